package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/braillebridge/teacher-console/internal/artifact"
	"github.com/braillebridge/teacher-console/internal/braille"
	"github.com/braillebridge/teacher-console/internal/dto"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

// ReviewBackend is the slice of the backend client the review workflow uses.
type ReviewBackend interface {
	GetSubmission(ctx context.Context, id int) (backendapi.Submission, error)
	GetAssignment(ctx context.Context, id int) (backendapi.Assignment, error)
	TranslateUrduToEnglish(ctx context.Context, text, question string) (string, error)
	Autograde(ctx context.Context, submissionID, answerIndex int) (backendapi.AutogradeResult, error)
	AnalyzeFeedback(ctx context.Context, feedback string, isCorrect bool, studentName string) (backendapi.FeedbackAnalysis, error)
	ResolveFileURL(filePath string) string
}

// ReviewService orchestrates the submission review and grading workflow:
// fetch, lazy translation, autograde, accept/reject and artifact export.
type ReviewService interface {
	Detail(ctx context.Context, submissionID int) (dto.ReviewDetailResponse, error)
	Grade(ctx context.Context, submissionID, answerIndex int) (dto.GradeResponse, error)
	Accept(ctx context.Context, submissionID int, payload dto.AcceptRequest) (dto.ReviewOutcomeResponse, error)
	Reject(ctx context.Context, submissionID int, payload dto.RejectRequest) (dto.ReviewOutcomeResponse, error)
}

type reviewService struct {
	backend   ReviewBackend
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewReviewService builds the review workflow service.
func NewReviewService(backend ReviewBackend, validate *validator.Validate, logger zerolog.Logger) ReviewService {
	return &reviewService{
		backend:   backend,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "review_service").Logger(),
	}
}

// Detail loads the submission and prepares its first answer for review. A
// missing English translation is computed exactly once and merged in-memory;
// translation failure is non-fatal and leaves the field absent.
func (s *reviewService) Detail(ctx context.Context, submissionID int) (dto.ReviewDetailResponse, error) {
	submission, err := s.backend.GetSubmission(ctx, submissionID)
	if err != nil {
		return dto.ReviewDetailResponse{}, err
	}

	if len(submission.Answers) == 0 {
		return dto.ReviewDetailResponse{}, ErrNoAnswers
	}
	answer := submission.Answers[0]

	prompt := s.promptFor(ctx, submission, answer.DiagramIdx)

	translated := false
	if answer.UrduText != "" && answer.EnglishText == "" {
		english, err := s.backend.TranslateUrduToEnglish(ctx, answer.UrduText, prompt)
		if err != nil {
			s.logger.Warn().Err(err).Int("submission_id", submissionID).Msg("translation fallback failed")
		} else {
			answer.EnglishText = strings.TrimSpace(english)
			translated = true
		}
	}

	display, converted := "", false
	if answer.BrailleText != "" {
		display, converted = braille.Render(answer.BrailleText)
	}

	tokens := braille.FlagTokens(answer.UrduText, answer.Errors)
	tokenViews := make([]dto.TokenView, 0, len(tokens))
	for _, token := range tokens {
		tokenViews = append(tokenViews, dto.TokenView{Text: token.Text, Flagged: token.Flagged})
	}

	return dto.ReviewDetailResponse{
		SubmissionID: submission.ID,
		AssignmentID: submission.AssignmentID,
		Student:      submission.Student,
		Prompt:       prompt,
		Answer: dto.AnswerView{
			DiagramIdx:       answer.DiagramIdx,
			AnswerType:       answer.AnswerType,
			FileURL:          s.backend.ResolveFileURL(answer.FilePath),
			UrduText:         answer.UrduText,
			EnglishText:      answer.EnglishText,
			BrailleText:      answer.BrailleText,
			BrailleDisplay:   display,
			BrailleConverted: converted,
			Translated:       translated,
			UrduTokens:       tokenViews,
		},
	}, nil
}

// Grade requests an autograde for the answer. The result is ephemeral: it is
// handed back to the caller and never stored, so a reloaded detail view
// starts ungraded again.
func (s *reviewService) Grade(ctx context.Context, submissionID, answerIndex int) (dto.GradeResponse, error) {
	result, err := s.backend.Autograde(ctx, submissionID, answerIndex)
	if err != nil {
		return dto.GradeResponse{}, err
	}

	s.logger.Info().Int("submission_id", submissionID).Bool("correct", result.Correct).Msg("submission autograded")
	return dto.NewGradeResponse(result), nil
}

// Accept records the AI feedback on the student's profile and exports the
// feedback artifacts. The analysis call always precedes artifact generation.
func (s *reviewService) Accept(ctx context.Context, submissionID int, payload dto.AcceptRequest) (dto.ReviewOutcomeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReviewOutcomeResponse{}, err
	}

	submission, answer, err := s.loadForExport(ctx, submissionID)
	if err != nil {
		return dto.ReviewOutcomeResponse{}, err
	}

	analysis, err := s.backend.AnalyzeFeedback(ctx, payload.Explanation, payload.Correct, submission.Student)
	if err != nil {
		return dto.ReviewOutcomeResponse{}, err
	}

	artifacts := s.export(submission, answer, payload.Explanation, payload.Correct, payload.ErrorStart, payload.ErrorEnd)

	return dto.ReviewOutcomeResponse{
		Analysis:  &dto.FeedbackAnalysisResponse{Trait: analysis.Trait, Type: analysis.Type},
		Artifacts: artifacts,
	}, nil
}

// Reject exports the same artifacts using the teacher's own feedback text
// verbatim. The student profile is deliberately not updated on this path.
func (s *reviewService) Reject(ctx context.Context, submissionID int, payload dto.RejectRequest) (dto.ReviewOutcomeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReviewOutcomeResponse{}, err
	}

	submission, answer, err := s.loadForExport(ctx, submissionID)
	if err != nil {
		return dto.ReviewOutcomeResponse{}, err
	}

	feedback := s.sanitizer.Sanitize(payload.Feedback)
	artifacts := s.export(submission, answer, feedback, payload.Correct, payload.ErrorStart, payload.ErrorEnd)

	return dto.ReviewOutcomeResponse{Artifacts: artifacts}, nil
}

func (s *reviewService) loadForExport(ctx context.Context, submissionID int) (backendapi.Submission, backendapi.Answer, error) {
	submission, err := s.backend.GetSubmission(ctx, submissionID)
	if err != nil {
		return backendapi.Submission{}, backendapi.Answer{}, err
	}
	if len(submission.Answers) == 0 {
		return backendapi.Submission{}, backendapi.Answer{}, ErrNoAnswers
	}

	return submission, submission.Answers[0], nil
}

// export builds the plain-text summary and, when the grade is incorrect with
// a usable error span over non-empty Braille text, the annotated SVG.
func (s *reviewService) export(submission backendapi.Submission, answer backendapi.Answer, feedback string, correct bool, errorStart, errorEnd *int) []artifact.Artifact {
	artifacts := []artifact.Artifact{artifact.Summary(artifact.FeedbackInput{
		SubmissionID: submission.ID,
		Student:      submission.Student,
		Feedback:     feedback,
		BrailleText:  answer.BrailleText,
		UrduText:     answer.UrduText,
		EnglishText:  answer.EnglishText,
	})}

	if answer.BrailleText != "" && !correct && errorStart != nil && errorEnd != nil {
		span := braille.Span{Start: *errorStart, End: *errorEnd}
		if svg, ok := artifact.AnnotatedSVG(submission.ID, answer.BrailleText, span); ok {
			artifacts = append(artifacts, svg)
		} else {
			s.logger.Warn().Int("submission_id", submission.ID).
				Int("error_start", *errorStart).Int("error_end", *errorEnd).
				Msg("skipping SVG export for unusable error span")
		}
	}

	return artifacts
}

func (s *reviewService) promptFor(ctx context.Context, submission backendapi.Submission, diagramIdx int) string {
	assignment := submission.Assignment
	if assignment == nil {
		fetched, err := s.backend.GetAssignment(ctx, submission.AssignmentID)
		if err != nil {
			s.logger.Warn().Err(err).Int("assignment_id", submission.AssignmentID).Msg("could not load assignment for prompt context")
			return ""
		}
		assignment = &fetched
	}

	if diagramIdx < 0 || diagramIdx >= len(assignment.Diagrams) {
		return ""
	}

	return assignment.Diagrams[diagramIdx].Prompt
}
