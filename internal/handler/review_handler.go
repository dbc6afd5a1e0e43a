package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/internal/service"
	"github.com/braillebridge/teacher-console/internal/utils"
)

// ReviewHandler wires the submission review and grading workflow.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler constructs the handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("component", "review_handler").Logger(),
	}
}

// Register attaches the review endpoints to the router group.
func (h *ReviewHandler) Register(router fiber.Router) {
	router.Get("/:id", h.detail)
	router.Post("/:id/grade", h.grade)
	router.Post("/:id/accept", h.accept)
	router.Post("/:id/reject", h.reject)
}

func (h *ReviewHandler) detail(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	detail, err := h.service.Detail(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission loaded for review", detail)
}

func (h *ReviewHandler) grade(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	answerIndex, err := parseQueryInt(c, "answer_index")
	if err != nil || answerIndex < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "answer_index must be a non-negative integer")
	}

	grade, err := h.service.Grade(c.UserContext(), id, answerIndex)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission autograded", grade)
}

func (h *ReviewHandler) accept(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AcceptRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	outcome, err := h.service.Accept(c.UserContext(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "feedback accepted", outcome)
}

func (h *ReviewHandler) reject(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.RejectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	outcome, err := h.service.Reject(c.UserContext(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "feedback rejected", outcome)
}
