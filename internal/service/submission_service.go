package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

// SubmissionBackend is the slice of the backend client submissions use.
type SubmissionBackend interface {
	SubmitAnswer(ctx context.Context, assignmentID int, student, answerType string, file backendapi.Upload) (int, error)
	ListSubmissions(ctx context.Context) ([]backendapi.Submission, error)
	GetSubmission(ctx context.Context, id int) (backendapi.Submission, error)
	CreateExternalSubmission(ctx context.Context, assignmentID int, student string, answers []backendapi.ExternalAnswer) (int, error)
}

// SubmissionService exposes submission creation and browsing.
type SubmissionService interface {
	Submit(ctx context.Context, assignmentID int, payload dto.SubmitAnswerRequest, file *multipart.FileHeader) (int, error)
	List(ctx context.Context) ([]dto.SubmissionSummaryResponse, error)
	Get(ctx context.Context, id int) (backendapi.Submission, error)
	CreateExternal(ctx context.Context, payload dto.ExternalSubmissionRequest) (int, error)
}

type submissionService struct {
	backend   SubmissionBackend
	validator *validator.Validate
	maxBytes  int64
	logger    zerolog.Logger
}

// NewSubmissionService builds the submission service.
func NewSubmissionService(backend SubmissionBackend, validate *validator.Validate, maxUploadMB int, logger zerolog.Logger) SubmissionService {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &submissionService{
		backend:   backend,
		validator: validate,
		maxBytes:  int64(maxUploadMB) * 1024 * 1024,
		logger:    logger.With().Str("component", "submission_service").Logger(),
	}
}

// Submit validates and forwards one student answer. The uploaded file must
// match the declared answer kind: an image answer must sniff as an image, an
// audio answer as audio.
func (s *submissionService) Submit(ctx context.Context, assignmentID int, payload dto.SubmitAnswerRequest, file *multipart.FileHeader) (int, error) {
	if err := s.validator.Struct(payload); err != nil {
		return 0, err
	}

	upload, mime, err := readUpload(file, s.maxBytes)
	if err != nil {
		return 0, err
	}

	wantPrefix := payload.AnswerType + "/"
	if !strings.HasPrefix(mime, wantPrefix) {
		return 0, fmt.Errorf("%w: %s answer requires an %s file, got %s", ErrValidation, payload.AnswerType, payload.AnswerType, mime)
	}

	id, err := s.backend.SubmitAnswer(ctx, assignmentID, payload.Student, payload.AnswerType, upload)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("submission_id", id).Str("student", payload.Student).Msg("answer submitted")
	return id, nil
}

// List fetches all submissions as browse rows.
func (s *submissionService) List(ctx context.Context) ([]dto.SubmissionSummaryResponse, error) {
	submissions, err := s.backend.ListSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionSummarySlice(submissions), nil
}

// Get fetches one submission with its recognized-text fields.
func (s *submissionService) Get(ctx context.Context, id int) (backendapi.Submission, error) {
	return s.backend.GetSubmission(ctx, id)
}

// CreateExternal registers a submission whose files already live in the
// backend's storage.
func (s *submissionService) CreateExternal(ctx context.Context, payload dto.ExternalSubmissionRequest) (int, error) {
	if err := s.validator.Struct(payload); err != nil {
		return 0, err
	}

	answers := make([]backendapi.ExternalAnswer, 0, len(payload.Answers))
	for _, answer := range payload.Answers {
		answers = append(answers, backendapi.ExternalAnswer{
			DiagramIdx: answer.DiagramIdx,
			AnswerType: answer.AnswerType,
			FilePath:   answer.FilePath,
		})
	}

	return s.backend.CreateExternalSubmission(ctx, payload.AssignmentID, payload.Student, answers)
}
