package backendapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return client, server
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestResolveFileURLStripsStoragePrefix(t *testing.T) {
	client, err := New(Config{BaseURL: "http://localhost:8000", Logger: zerolog.Nop()})
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8000/uploads/sub_1_ali_answer.jpg", client.ResolveFileURL("backend/uploads/sub_1_ali_answer.jpg"))
	require.Equal(t, "http://localhost:8000/uploads/a.jpg", client.ResolveFileURL("uploads/a.jpg"))
	require.Equal(t, "", client.ResolveFileURL(""))
}

func TestNonSuccessStatusBecomesRemoteError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"submission not found"}`))
	}))

	_, err := client.GetSubmission(context.Background(), 42)
	require.Error(t, err)
	require.True(t, IsStatus(err, http.StatusNotFound))

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	require.Contains(t, remote.Body, "submission not found")
}

func TestCreateAssignmentSendsMultipartForm(t *testing.T) {
	var gotTitle, gotPrompts string
	var gotFiles int

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/assignments", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotTitle = r.FormValue("title")
		gotPrompts = r.FormValue("prompts")
		gotFiles = len(r.MultipartForm.File["files"])
		_ = json.NewEncoder(w).Encode(map[string]int{"assignment_id": 7})
	}))

	files := []Upload{
		{Filename: "heart.png", Content: strings.NewReader("png-bytes")},
		{Filename: "lungs.png", Content: strings.NewReader("png-bytes")},
	}
	id, err := client.CreateAssignment(context.Background(), "Biology", files, []string{"Label the heart", "Label the lungs"}, nil)
	require.NoError(t, err)
	require.Equal(t, 7, id)
	require.Equal(t, "Biology", gotTitle)
	require.JSONEq(t, `["Label the heart","Label the lungs"]`, gotPrompts)
	require.Equal(t, 2, gotFiles)
}

func TestCreateAssignmentRejectsLengthMismatch(t *testing.T) {
	client, err := New(Config{BaseURL: "http://localhost:8000", Logger: zerolog.Nop()})
	require.NoError(t, err)

	_, err = client.CreateAssignment(context.Background(), "t", []Upload{{Filename: "a.png", Content: strings.NewReader("x")}}, nil, nil)
	require.Error(t, err)
}

func TestAutogradeDecodesValidResult(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/submissions/3/autograde", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"correct":false,"explanation":"wrong organ","error_start":5,"error_end":9}`))
	}))

	result, err := client.Autograde(context.Background(), 3, 0)
	require.NoError(t, err)
	require.False(t, result.Correct)
	require.Equal(t, "wrong organ", result.Explanation)
	require.NotNil(t, result.ErrorStart)
	require.Equal(t, 5, *result.ErrorStart)
	require.NotNil(t, result.ErrorEnd)
	require.Equal(t, 9, *result.ErrorEnd)
}

func TestAutogradeRejectsSchemaViolations(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"correct":"yes","explanation":42}`))
	}))

	_, err := client.Autograde(context.Background(), 3, 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema validation")
}

func TestTextToBraille(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "salaam", payload["text"])
		require.Equal(t, "urdu", payload["lang"])
		_, _ = w.Write([]byte(`{"braille_text":"⠎⠁⠇⠁⠁⠍"}`))
	}))

	braille, err := client.TextToBraille(context.Background(), "salaam", "urdu")
	require.NoError(t, err)
	require.Equal(t, "⠎⠁⠇⠁⠁⠍", braille)
}

func TestAnalyzeFeedbackPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "clear reasoning", payload["feedback"])
		require.Equal(t, true, payload["is_correct"])
		require.Equal(t, "Ali", payload["student_name"])
		_, _ = w.Write([]byte(`{"trait":"careful reader","type":"strength"}`))
	}))

	analysis, err := client.AnalyzeFeedback(context.Background(), "clear reasoning", true, "Ali")
	require.NoError(t, err)
	require.Equal(t, "careful reader", analysis.Trait)
	require.Equal(t, "strength", analysis.Type)
}

func TestStreamProgressDeliversEvents(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = w.Write([]byte("data: {\"status\":\"starting\",\"total\":2}\n\n"))
		_, _ = w.Write([]byte("data: {\"status\":\"processing\",\"idx\":1,\"total\":2}\n\n"))
		flusher.Flush()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	events, err := client.StreamProgress(ctx)
	require.NoError(t, err)

	first := <-events
	require.Equal(t, "starting", first.Status)
	require.Equal(t, 2, first.Total)

	second := <-events
	require.Equal(t, "processing", second.Status)
	require.Equal(t, 1, second.Idx)

	_, open := <-events
	require.False(t, open)
}

func TestStreamProgressClosesOnCancel(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := client.StreamProgress(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-events:
		require.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after cancellation")
	}
}
