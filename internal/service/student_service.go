package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

const studentsCacheKey = "console:students"

// StudentBackend is the slice of the backend client the student view uses.
type StudentBackend interface {
	ListStudents(ctx context.Context) ([]backendapi.StudentProfile, error)
}

// StudentService exposes the student profile browse view.
type StudentService interface {
	List(ctx context.Context) ([]dto.StudentResponse, error)
}

type studentService struct {
	backend  StudentBackend
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewStudentService builds the student service. cache may be nil.
func NewStudentService(backend StudentBackend, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) StudentService {
	return &studentService{
		backend:  backend,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, studentsCacheKey).Result(); err == nil {
			var responses []dto.StudentResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				return responses, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read student list cache")
		}
	}

	students, err := s.backend.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	responses := dto.NewStudentResponseSlice(students)

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, studentsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store student list cache")
			}
		}
	}

	return responses, nil
}
