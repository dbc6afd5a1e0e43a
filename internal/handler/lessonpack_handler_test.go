package handler_test

import (
	"context"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	gorillaws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/internal/handler"
	"github.com/braillebridge/teacher-console/internal/stream"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

type mockLessonPackService struct {
	archive []byte
	name    string
	err     error
	payload dto.AssignmentCreateRequest
}

func (m *mockLessonPackService) Generate(_ context.Context, payload dto.AssignmentCreateRequest, _ *int, _ []*multipart.FileHeader) ([]byte, string, error) {
	m.payload = payload
	return m.archive, m.name, m.err
}

func newLessonPackApp(svc *mockLessonPackService, hub *stream.Hub) *fiber.App {
	app := fiber.New()
	handler.NewLessonPackHandler(svc, hub, zerolog.New(io.Discard)).Register(app.Group("/api/lesson-packs"))
	return app
}

func TestLessonPackHandler_GenerateReturnsZipDownload(t *testing.T) {
	svc := &mockLessonPackService{archive: []byte("PK\x03\x04fake"), name: "Anatomy.zip"}
	app := newLessonPackApp(svc, stream.NewHub(zerolog.Nop()))

	req := newMultipartBody(t).
		field(t, "title", "Anatomy").
		field(t, "prompts", `["Label the heart"]`).
		file(t, "files", "heart.png", pngBytes).
		request(t, http.MethodPost, "/api/lesson-packs")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), `filename="Anatomy.zip"`)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, []byte("PK\x03\x04fake"), body)
}

func TestLessonPackHandler_GenerateRejectsBadAssignmentID(t *testing.T) {
	app := newLessonPackApp(&mockLessonPackService{}, stream.NewHub(zerolog.Nop()))

	req := newMultipartBody(t).
		field(t, "title", "Anatomy").
		field(t, "prompts", `["p"]`).
		field(t, "assignment_id", "zero").
		file(t, "files", "heart.png", pngBytes).
		request(t, http.MethodPost, "/api/lesson-packs")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLessonPackHandler_ProgressLog(t *testing.T) {
	hub := stream.NewHub(zerolog.Nop())
	hub.Publish(backendapi.ProgressEvent{Status: "starting", Total: 2})
	app := newLessonPackApp(&mockLessonPackService{}, hub)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/lesson-packs/progress", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data []string `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, []string{"Starting lesson pack generation (2 diagrams)"}, response.Data)
}

func TestLessonPackHandler_ProgressSocketStreamsLines(t *testing.T) {
	hub := stream.NewHub(zerolog.Nop())
	hub.Publish(backendapi.ProgressEvent{Status: "starting", Total: 2})
	app := newLessonPackApp(&mockLessonPackService{}, hub)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	defer app.Shutdown()

	url := "ws://" + ln.Addr().String() + "/api/lesson-packs/progress/ws"
	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	// The accumulated log is replayed first.
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "Starting lesson pack generation (2 diagrams)", string(message))

	// Once the replay has been read the subscription is live.
	hub.Publish(backendapi.ProgressEvent{Status: "processing", Idx: 1, Total: 2})

	_, message, err = conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "Processing diagram 1 of 2", string(message))
}

func TestLessonPackHandler_ProgressSocketRequiresUpgrade(t *testing.T) {
	app := newLessonPackApp(&mockLessonPackService{}, stream.NewHub(zerolog.Nop()))

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/lesson-packs/progress/ws", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
