package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/braille"
	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

// BrailleBackend is the slice of the backend client the Braille tools use.
type BrailleBackend interface {
	TextToBraille(ctx context.Context, text, lang string) (string, error)
	ProcessBrailleImage(ctx context.Context, file backendapi.Upload) (backendapi.BrailleScan, error)
}

// BrailleService exposes Braille rendering and conversion. Rendering is a
// pure local operation; conversion and scanning go through the backend.
type BrailleService interface {
	Render(payload dto.BrailleRenderRequest) (dto.BrailleRenderResponse, error)
	Convert(ctx context.Context, payload dto.TextToBrailleRequest) (dto.TextToBrailleResponse, error)
	Scan(ctx context.Context, file *multipart.FileHeader) (backendapi.BrailleScan, error)
}

type brailleService struct {
	backend   BrailleBackend
	validator *validator.Validate
	maxBytes  int64
	logger    zerolog.Logger
}

// NewBrailleService builds the Braille tools service.
func NewBrailleService(backend BrailleBackend, validate *validator.Validate, maxUploadMB int, logger zerolog.Logger) BrailleService {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &brailleService{
		backend:   backend,
		validator: validate,
		maxBytes:  int64(maxUploadMB) * 1024 * 1024,
		logger:    logger.With().Str("component", "braille_service").Logger(),
	}
}

// Render returns the display form of text: already-Braille strings pass
// through, anything else is transliterated locally.
func (s *brailleService) Render(payload dto.BrailleRenderRequest) (dto.BrailleRenderResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BrailleRenderResponse{}, err
	}

	text, converted := braille.Render(payload.Text)
	return dto.BrailleRenderResponse{Braille: text, Converted: converted}, nil
}

// Convert asks the backend for a Grade-1 Braille translation.
func (s *brailleService) Convert(ctx context.Context, payload dto.TextToBrailleRequest) (dto.TextToBrailleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TextToBrailleResponse{}, err
	}

	text, err := s.backend.TextToBraille(ctx, payload.Text, payload.Lang)
	if err != nil {
		return dto.TextToBrailleResponse{}, err
	}

	return dto.TextToBrailleResponse{BrailleText: text}, nil
}

// Scan OCRs an uploaded Braille image through the backend.
func (s *brailleService) Scan(ctx context.Context, file *multipart.FileHeader) (backendapi.BrailleScan, error) {
	upload, mime, err := readUpload(file, s.maxBytes)
	if err != nil {
		return backendapi.BrailleScan{}, err
	}
	if !strings.HasPrefix(mime, "image/") {
		return backendapi.BrailleScan{}, fmt.Errorf("%w: scan requires an image file, got %s", ErrValidation, mime)
	}

	return s.backend.ProcessBrailleImage(ctx, upload)
}
