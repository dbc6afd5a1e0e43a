package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/internal/stream"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

var unsafeTitleChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// LessonPackBackend is the slice of the backend client lesson packs use.
type LessonPackBackend interface {
	GenerateLessonPack(ctx context.Context, title string, assignmentID *int, files []backendapi.Upload, prompts []string) ([]byte, error)
	StreamProgress(ctx context.Context) (<-chan backendapi.ProgressEvent, error)
}

// LessonPackService generates downloadable lesson packs while relaying
// backend progress to the hub.
type LessonPackService interface {
	Generate(ctx context.Context, payload dto.AssignmentCreateRequest, assignmentID *int, files []*multipart.FileHeader) ([]byte, string, error)
}

type lessonPackService struct {
	backend   LessonPackBackend
	hub       *stream.Hub
	validator *validator.Validate
	maxBytes  int64
	logger    zerolog.Logger
}

// NewLessonPackService builds the lesson pack service.
func NewLessonPackService(backend LessonPackBackend, hub *stream.Hub, validate *validator.Validate, maxUploadMB int, logger zerolog.Logger) LessonPackService {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &lessonPackService{
		backend:   backend,
		hub:       hub,
		validator: validate,
		maxBytes:  int64(maxUploadMB) * 1024 * 1024,
		logger:    logger.With().Str("component", "lesson_pack_service").Logger(),
	}
}

// Generate validates the diagram batch, then runs the generation request and
// the progress stream concurrently. The stream is tied to a context that is
// cancelled as soon as the request settles, so the connection never outlives
// the generation. A stream that fails to open is logged and ignored because
// progress reporting is best-effort.
func (s *lessonPackService) Generate(ctx context.Context, payload dto.AssignmentCreateRequest, assignmentID *int, files []*multipart.FileHeader) ([]byte, string, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, "", err
	}

	if len(files) == 0 {
		return nil, "", fmt.Errorf("%w: at least one diagram image is required", ErrValidation)
	}
	if len(files) != len(payload.Prompts) {
		return nil, "", fmt.Errorf("%w: %d files but %d prompts", ErrValidation, len(files), len(payload.Prompts))
	}

	uploads, err := readImageUploads(files, s.maxBytes)
	if err != nil {
		return nil, "", err
	}

	streamCtx, closeStream := context.WithCancel(ctx)
	defer closeStream()

	relayed := make(chan struct{})
	events, streamErr := s.backend.StreamProgress(streamCtx)
	if streamErr != nil {
		s.logger.Warn().Err(streamErr).Msg("progress stream unavailable")
		close(relayed)
	} else {
		go func() {
			defer close(relayed)
			for event := range events {
				s.hub.Publish(event)
			}
		}()
	}

	archive, err := s.backend.GenerateLessonPack(ctx, payload.Title, assignmentID, uploads, payload.Prompts)
	closeStream()
	<-relayed
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("title", payload.Title).Int("diagrams", len(uploads)).Msg("lesson pack generated")
	return archive, safeArchiveName(payload.Title), nil
}

// safeArchiveName mirrors the backend's download naming: the title reduced
// to a filesystem-safe slug plus the zip extension.
func safeArchiveName(title string) string {
	slug := unsafeTitleChars.ReplaceAllString(strings.TrimSpace(title), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "lesson_pack"
	}

	return slug + ".zip"
}
