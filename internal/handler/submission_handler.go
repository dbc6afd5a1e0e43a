package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/internal/service"
	"github.com/braillebridge/teacher-console/internal/utils"
)

// SubmissionHandler wires submission HTTP routes.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the submission browse and external-ingest endpoints.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("/external", h.createExternal)
}

// RegisterSubmitRoute attaches the answer upload endpoint under the
// assignments group.
func (h *SubmissionHandler) RegisterSubmitRoute(router fiber.Router) {
	router.Post("/:id/submit", h.submit)
}

func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	assignmentID, err := parseIntParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := dto.SubmitAnswerRequest{
		Student:    c.FormValue("student"),
		AnswerType: c.FormValue("answer_type"),
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "answer file is required")
	}

	id, err := h.service.Submit(c.UserContext(), assignmentID, payload, file)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "answer submitted", fiber.Map{"submission_id": id})
}

// list degrades to an empty list when the backend is unreachable.
func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	submissions, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("submission list unavailable")
		return utils.SendSuccess(c, "submissions retrieved", []dto.SubmissionSummaryResponse{})
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission retrieved", submission)
}

func (h *SubmissionHandler) createExternal(c *fiber.Ctx) error {
	var payload dto.ExternalSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	id, err := h.service.CreateExternal(c.UserContext(), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "external submission registered", fiber.Map{"submission_id": id})
}
