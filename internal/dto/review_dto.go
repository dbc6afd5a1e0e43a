package dto

import (
	"github.com/braillebridge/teacher-console/internal/artifact"
	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

// TokenView is one whitespace-delimited token of the source-language text,
// flagged when it appears in the answer's stored error-token set.
type TokenView struct {
	Text    string `json:"text"`
	Flagged bool   `json:"flagged"`
}

// AnswerView is the reviewed answer with its Braille display form computed.
type AnswerView struct {
	DiagramIdx       int         `json:"diagram_idx"`
	AnswerType       string      `json:"answer_type"`
	FileURL          string      `json:"file_url"`
	UrduText         string      `json:"urdu_text"`
	EnglishText      string      `json:"english_text"`
	BrailleText      string      `json:"braille_text"`
	BrailleDisplay   string      `json:"braille_display"`
	BrailleConverted bool        `json:"braille_converted"`
	Translated       bool        `json:"translated"`
	UrduTokens       []TokenView `json:"urdu_tokens"`
}

// ReviewDetailResponse is the full detail view for grading one submission.
// Only the first answer is reviewed; submissions with no answers are rejected
// at the data boundary.
type ReviewDetailResponse struct {
	SubmissionID int        `json:"submission_id"`
	AssignmentID int        `json:"assignment_id"`
	Student      string     `json:"student"`
	Prompt       string     `json:"prompt"`
	Answer       AnswerView `json:"answer"`
}

// GradeResponse is the ephemeral autograde result. It is returned to the
// caller and never stored; reloading the detail view starts ungraded.
type GradeResponse struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
	ErrorStart  *int   `json:"error_start"`
	ErrorEnd    *int   `json:"error_end"`
}

// NewGradeResponse converts a backend autograde result.
func NewGradeResponse(result backendapi.AutogradeResult) GradeResponse {
	return GradeResponse{
		Correct:     result.Correct,
		Explanation: result.Explanation,
		ErrorStart:  result.ErrorStart,
		ErrorEnd:    result.ErrorEnd,
	}
}

// AcceptRequest carries the autograde result the teacher is accepting.
type AcceptRequest struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation" validate:"required,min=1"`
	ErrorStart  *int   `json:"error_start"`
	ErrorEnd    *int   `json:"error_end"`
}

// RejectRequest carries the teacher's own feedback replacing the AI
// explanation. Only the accept path updates the student profile.
type RejectRequest struct {
	Feedback   string `json:"feedback" validate:"required,min=1"`
	Correct    bool   `json:"correct"`
	ErrorStart *int   `json:"error_start"`
	ErrorEnd   *int   `json:"error_end"`
}

// FeedbackAnalysisResponse is the trait recorded on the student profile.
type FeedbackAnalysisResponse struct {
	Trait string `json:"trait"`
	Type  string `json:"type"`
}

// ReviewOutcomeResponse bundles the exported artifacts and, on the accept
// path, the profile analysis.
type ReviewOutcomeResponse struct {
	Analysis  *FeedbackAnalysisResponse `json:"analysis,omitempty"`
	Artifacts []artifact.Artifact       `json:"artifacts"`
}
