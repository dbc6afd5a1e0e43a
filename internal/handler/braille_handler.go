package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/internal/service"
	"github.com/braillebridge/teacher-console/internal/utils"
)

// BrailleHandler wires the Braille tooling endpoints.
type BrailleHandler struct {
	service service.BrailleService
	logger  zerolog.Logger
}

// NewBrailleHandler constructs the handler.
func NewBrailleHandler(service service.BrailleService, logger zerolog.Logger) *BrailleHandler {
	return &BrailleHandler{
		service: service,
		logger:  logger.With().Str("component", "braille_handler").Logger(),
	}
}

// Register attaches the Braille endpoints to the router group.
func (h *BrailleHandler) Register(router fiber.Router) {
	router.Post("/render", h.render)
	router.Post("/convert", h.convert)
	router.Post("/scan", h.scan)
}

// render is purely local: Braille input passes through, anything else is
// transliterated glyph by glyph.
func (h *BrailleHandler) render(c *fiber.Ctx) error {
	var payload dto.BrailleRenderRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Render(payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "text rendered", result)
}

func (h *BrailleHandler) convert(c *fiber.Ctx) error {
	var payload dto.TextToBrailleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Convert(c.UserContext(), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "text converted", result)
}

func (h *BrailleHandler) scan(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image file is required")
	}

	scan, err := h.service.Scan(c.UserContext(), file)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "image scanned", scan)
}
