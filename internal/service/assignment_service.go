package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

const assignmentsCacheKey = "console:assignments"

// AssignmentBackend is the slice of the backend client assignments use.
type AssignmentBackend interface {
	CreateAssignment(ctx context.Context, title string, files []backendapi.Upload, prompts, contexts []string) (int, error)
	ListAssignments(ctx context.Context) ([]backendapi.Assignment, error)
	GetAssignment(ctx context.Context, id int) (backendapi.Assignment, error)
	ResolveFileURL(filePath string) string
}

// AssignmentService exposes the assignment use cases.
type AssignmentService interface {
	Create(ctx context.Context, payload dto.AssignmentCreateRequest, files []*multipart.FileHeader) (int, error)
	List(ctx context.Context) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, id int) (dto.AssignmentResponse, error)
}

type assignmentService struct {
	backend   AssignmentBackend
	validator *validator.Validate
	cache     *redis.Client
	cacheTTL  time.Duration
	maxBytes  int64
	logger    zerolog.Logger
}

// NewAssignmentService builds the assignment service. cache may be nil, in
// which case list results are always fetched fresh.
func NewAssignmentService(backend AssignmentBackend, validate *validator.Validate, cache *redis.Client, cacheTTL time.Duration, maxUploadMB int, logger zerolog.Logger) AssignmentService {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &assignmentService{
		backend:   backend,
		validator: validate,
		cache:     cache,
		cacheTTL:  cacheTTL,
		maxBytes:  int64(maxUploadMB) * 1024 * 1024,
		logger:    logger.With().Str("component", "assignment_service").Logger(),
	}
}

// Create validates the diagram batch client-side and forwards it to the
// backend. Validation failures block the call before any network traffic.
func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest, files []*multipart.FileHeader) (int, error) {
	if err := s.validator.Struct(payload); err != nil {
		return 0, err
	}

	if len(files) == 0 {
		return 0, fmt.Errorf("%w: at least one diagram image is required", ErrValidation)
	}
	if len(files) != len(payload.Prompts) {
		return 0, fmt.Errorf("%w: %d files but %d prompts", ErrValidation, len(files), len(payload.Prompts))
	}
	if len(payload.Contexts) > 0 && len(payload.Contexts) != len(files) {
		return 0, fmt.Errorf("%w: %d files but %d contexts", ErrValidation, len(files), len(payload.Contexts))
	}

	uploads, err := readImageUploads(files, s.maxBytes)
	if err != nil {
		return 0, err
	}

	id, err := s.backend.CreateAssignment(ctx, payload.Title, uploads, payload.Prompts, payload.Contexts)
	if err != nil {
		return 0, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Int("assignment_id", id).Int("diagrams", len(uploads)).Msg("assignment created")
	return id, nil
}

// List fetches all assignments, serving a short-lived cached copy when one
// exists. Cache trouble never fails the call.
func (s *assignmentService) List(ctx context.Context) ([]dto.AssignmentResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, assignmentsCacheKey).Result(); err == nil {
			var responses []dto.AssignmentResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				s.logger.Debug().Msg("assignment list cache hit")
				return responses, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read assignment list cache")
		}
	}

	assignments, err := s.backend.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}

	responses := dto.NewAssignmentResponseSlice(assignments, s.backend.ResolveFileURL)

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, assignmentsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store assignment list cache")
			}
		}
	}

	return responses, nil
}

// Get fetches one assignment.
func (s *assignmentService) Get(ctx context.Context, id int) (dto.AssignmentResponse, error) {
	assignment, err := s.backend.GetAssignment(ctx, id)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment, s.backend.ResolveFileURL), nil
}

func (s *assignmentService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, assignmentsCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate assignment list cache")
	}
}
