package handler_test

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/internal/handler"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

type mockBrailleService struct {
	rendered  dto.BrailleRenderResponse
	renderErr error

	converted  dto.TextToBrailleResponse
	convertErr error

	scan    backendapi.BrailleScan
	scanErr error
}

func (m *mockBrailleService) Render(dto.BrailleRenderRequest) (dto.BrailleRenderResponse, error) {
	return m.rendered, m.renderErr
}

func (m *mockBrailleService) Convert(context.Context, dto.TextToBrailleRequest) (dto.TextToBrailleResponse, error) {
	return m.converted, m.convertErr
}

func (m *mockBrailleService) Scan(context.Context, *multipart.FileHeader) (backendapi.BrailleScan, error) {
	return m.scan, m.scanErr
}

func newBrailleApp(svc *mockBrailleService) *fiber.App {
	app := fiber.New()
	handler.NewBrailleHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/braille"))
	return app
}

func TestBrailleHandler_Render(t *testing.T) {
	svc := &mockBrailleService{rendered: dto.BrailleRenderResponse{Braille: "⠁⠃", Converted: true}}
	app := newBrailleApp(svc)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/braille/render", dto.BrailleRenderRequest{Text: "ab"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data dto.BrailleRenderResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "⠁⠃", response.Data.Braille)
	require.True(t, response.Data.Converted)
}

func TestBrailleHandler_ScanRequiresFile(t *testing.T) {
	app := newBrailleApp(&mockBrailleService{})

	req := newMultipartBody(t).request(t, http.MethodPost, "/api/braille/scan")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBrailleHandler_ScanForwardsResult(t *testing.T) {
	svc := &mockBrailleService{scan: backendapi.BrailleScan{BrailleText: "⠁", UrduText: "ا"}}
	app := newBrailleApp(svc)

	req := newMultipartBody(t).
		file(t, "file", "scan.png", pngBytes).
		request(t, http.MethodPost, "/api/braille/scan")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data backendapi.BrailleScan `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "⠁", response.Data.BrailleText)
}
