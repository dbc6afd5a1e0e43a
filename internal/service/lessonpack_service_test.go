package service

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/internal/stream"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

type fakeLessonPackBackend struct {
	events    []backendapi.ProgressEvent
	streamErr error
	streamCtx context.Context

	archive    []byte
	genErr     error
	genTitle   string
	genPrompts []string
	genFiles   int
}

func (f *fakeLessonPackBackend) StreamProgress(ctx context.Context) (<-chan backendapi.ProgressEvent, error) {
	f.streamCtx = ctx
	if f.streamErr != nil {
		return nil, f.streamErr
	}

	ch := make(chan backendapi.ProgressEvent, len(f.events))
	for _, event := range f.events {
		ch <- event
	}
	close(ch)
	return ch, nil
}

func (f *fakeLessonPackBackend) GenerateLessonPack(_ context.Context, title string, _ *int, files []backendapi.Upload, prompts []string) ([]byte, error) {
	f.genTitle = title
	f.genPrompts = prompts
	f.genFiles = len(files)
	return f.archive, f.genErr
}

func newLessonPackService(backend *fakeLessonPackBackend, hub *stream.Hub) LessonPackService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewLessonPackService(backend, hub, validate, 10, zerolog.Nop())
}

func lessonPackFiles(t *testing.T) []*multipart.FileHeader {
	t.Helper()
	return []*multipart.FileHeader{
		multipartFileHeader(t, "heart.png", pngBytes),
		multipartFileHeader(t, "lungs.png", pngBytes),
	}
}

func TestGenerateReturnsArchiveWithSafeName(t *testing.T) {
	backend := &fakeLessonPackBackend{archive: []byte("PK\x03\x04")}
	svc := newLessonPackService(backend, stream.NewHub(zerolog.Nop()))

	payload := dto.AssignmentCreateRequest{Title: "Heart & Lungs!", Prompts: []string{"a", "b"}}
	archive, name, err := svc.Generate(context.Background(), payload, nil, lessonPackFiles(t))
	require.NoError(t, err)
	require.Equal(t, []byte("PK\x03\x04"), archive)
	require.Equal(t, "Heart_Lungs.zip", name)
	require.Equal(t, 2, backend.genFiles)
}

func TestGenerateRelaysProgressToHub(t *testing.T) {
	backend := &fakeLessonPackBackend{
		archive: []byte("zip"),
		events: []backendapi.ProgressEvent{
			{Status: "starting", Total: 2},
			{Status: "processing", Idx: 1, Total: 2},
			{Status: "finished"},
		},
	}
	hub := stream.NewHub(zerolog.Nop())
	svc := newLessonPackService(backend, hub)

	payload := dto.AssignmentCreateRequest{Title: "Anatomy", Prompts: []string{"a", "b"}}
	_, _, err := svc.Generate(context.Background(), payload, nil, lessonPackFiles(t))
	require.NoError(t, err)

	// Generate does not return until the relay goroutine has drained the
	// stream, so the log is complete here. The finished event is dropped.
	require.Equal(t, []string{
		"Starting lesson pack generation (2 diagrams)",
		"Processing diagram 1 of 2",
	}, hub.Lines())
}

func TestGenerateClosesStreamWhenRequestSettles(t *testing.T) {
	backend := &fakeLessonPackBackend{archive: []byte("zip")}
	svc := newLessonPackService(backend, stream.NewHub(zerolog.Nop()))

	payload := dto.AssignmentCreateRequest{Title: "Anatomy", Prompts: []string{"a", "b"}}
	_, _, err := svc.Generate(context.Background(), payload, nil, lessonPackFiles(t))
	require.NoError(t, err)
	require.ErrorIs(t, backend.streamCtx.Err(), context.Canceled)
}

func TestGenerateStreamFailureIsIgnored(t *testing.T) {
	backend := &fakeLessonPackBackend{
		archive:   []byte("zip"),
		streamErr: &backendapi.RemoteError{StatusCode: 502, Body: "stream down"},
	}
	svc := newLessonPackService(backend, stream.NewHub(zerolog.Nop()))

	payload := dto.AssignmentCreateRequest{Title: "Anatomy", Prompts: []string{"a", "b"}}
	archive, _, err := svc.Generate(context.Background(), payload, nil, lessonPackFiles(t))
	require.NoError(t, err, "progress reporting is best-effort")
	require.NotEmpty(t, archive)
}

func TestGenerateBackendFailureStillClosesStream(t *testing.T) {
	backend := &fakeLessonPackBackend{genErr: &backendapi.RemoteError{StatusCode: 500, Body: "generation failed"}}
	svc := newLessonPackService(backend, stream.NewHub(zerolog.Nop()))

	payload := dto.AssignmentCreateRequest{Title: "Anatomy", Prompts: []string{"a", "b"}}
	_, _, err := svc.Generate(context.Background(), payload, nil, lessonPackFiles(t))
	require.Error(t, err)
	require.ErrorIs(t, backend.streamCtx.Err(), context.Canceled)
}

func TestGenerateRejectsPromptCountMismatch(t *testing.T) {
	svc := newLessonPackService(&fakeLessonPackBackend{}, stream.NewHub(zerolog.Nop()))

	payload := dto.AssignmentCreateRequest{Title: "Anatomy", Prompts: []string{"only one"}}
	_, _, err := svc.Generate(context.Background(), payload, nil, lessonPackFiles(t))
	require.ErrorIs(t, err, ErrValidation)
}

func TestSafeArchiveName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Anatomy", "Anatomy.zip"},
		{"Heart & Lungs!", "Heart_Lungs.zip"},
		{"  lesson pack 1  ", "lesson_pack_1.zip"},
		{"###", "lesson_pack.zip"},
		{"", "lesson_pack.zip"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, safeArchiveName(tc.title), "title %q", tc.title)
	}
}
