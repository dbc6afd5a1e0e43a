package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/middleware"
	"github.com/braillebridge/teacher-console/internal/service"
	"github.com/braillebridge/teacher-console/internal/utils"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

func parseIntParam(c *fiber.Ctx, name string) (int, error) {
	parsed, err := strconv.Atoi(c.Params(name))
	if err != nil || parsed <= 0 {
		return 0, errors.New("invalid identifier")
	}
	return parsed, nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// respondServiceError maps service failures onto HTTP statuses: client
// mistakes are 4xx, backend trouble is 502, anything else is 500.
func respondServiceError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	var remote *backendapi.RemoteError

	switch {
	case errors.Is(err, service.ErrNoAnswers):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "submission has no answers")
	case errors.Is(err, service.ErrValidation):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.As(err, &remote):
		if remote.StatusCode == fiber.StatusNotFound {
			return utils.SendError(c, fiber.StatusNotFound, "not found")
		}
		requestLogger(logger, c).Error().Int("upstream_status", remote.StatusCode).Msg("backend call failed")
		return utils.SendError(c, fiber.StatusBadGateway, "backend request failed")
	default:
		requestLogger(logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
