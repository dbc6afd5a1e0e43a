package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/config"
	"github.com/braillebridge/teacher-console/internal/utils"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

// HealthBackend is the slice of the backend client the health probe uses.
type HealthBackend interface {
	CheckHealth(ctx context.Context) (backendapi.Health, error)
}

// HealthResponse reports console liveness plus the state of the processing
// backend and its OCR model.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Backend     string    `json:"backend"`
	ModelLoaded bool      `json:"model_loaded"`
}

// HealthCheck probes the processing backend alongside the console itself. An
// unreachable backend degrades the status instead of failing the endpoint.
func HealthCheck(cfg config.Config, backend HealthBackend, logger zerolog.Logger) fiber.Handler {
	healthLogger := logger.With().Str("component", "health_handler").Logger()

	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Backend:     "ok",
		}

		health, err := backend.CheckHealth(c.UserContext())
		if err != nil {
			healthLogger.Warn().Err(err).Msg("backend health probe failed")
			payload.Status = "degraded"
			payload.Backend = "unreachable"
		} else {
			payload.Backend = health.Status
			payload.ModelLoaded = health.ModelLoaded
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
