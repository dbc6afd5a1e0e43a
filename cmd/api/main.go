package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/config"
	"github.com/braillebridge/teacher-console/internal/handler"
	"github.com/braillebridge/teacher-console/internal/middleware"
	"github.com/braillebridge/teacher-console/internal/router"
	"github.com/braillebridge/teacher-console/internal/service"
	"github.com/braillebridge/teacher-console/internal/stream"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	backend, err := backendapi.New(backendapi.Config{
		BaseURL:       cfg.BackendBaseURL,
		StaticBaseURL: cfg.StaticBaseURL,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to parse redis url: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	hub := stream.NewHub(logger)

	assignmentService := service.NewAssignmentService(backend, validate, redisClient, cfg.ListCacheTTL, cfg.MaxUploadMB, logger)
	submissionService := service.NewSubmissionService(backend, validate, cfg.MaxUploadMB, logger)
	reviewService := service.NewReviewService(backend, validate, logger)
	studentService := service.NewStudentService(backend, redisClient, cfg.ListCacheTTL, logger)
	brailleService := service.NewBrailleService(backend, validate, cfg.MaxUploadMB, logger)
	lessonPackService := service.NewLessonPackService(backend, hub, validate, cfg.MaxUploadMB, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.MaxUploadMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.FrontendOrigin,
	})

	router.Register(app, cfg, router.Dependencies{
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		ReviewHandler:     handler.NewReviewHandler(reviewService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		BrailleHandler:    handler.NewBrailleHandler(brailleService, logger),
		LessonPackHandler: handler.NewLessonPackHandler(lessonPackService, hub, logger),
		HealthBackend:     backend,
		Logger:            logger,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
