package dto

import "github.com/braillebridge/teacher-console/pkg/backendapi"

// SubmitAnswerRequest is the multipart payload for a student answer upload.
type SubmitAnswerRequest struct {
	Student    string `form:"student" json:"student" validate:"required,min=1"`
	AnswerType string `form:"answer_type" json:"answer_type" validate:"required,oneof=image audio"`
}

// ExternalAnswerRequest is one answer entry from an external system whose
// files already live in backend storage.
type ExternalAnswerRequest struct {
	DiagramIdx int    `json:"diagram_idx" validate:"gte=0"`
	AnswerType string `json:"answer_type" validate:"required,oneof=image audio"`
	FilePath   string `json:"file_path" validate:"required"`
}

// ExternalSubmissionRequest registers a submission on behalf of an external
// system.
type ExternalSubmissionRequest struct {
	AssignmentID int                     `json:"assignment_id" validate:"required,gt=0"`
	Student      string                  `json:"student" validate:"required,min=1"`
	Answers      []ExternalAnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

// SubmissionSummaryResponse is a row in the submissions browse view.
type SubmissionSummaryResponse struct {
	ID           int    `json:"id"`
	AssignmentID int    `json:"assignment_id"`
	Student      string `json:"student"`
	AnswerCount  int    `json:"answer_count"`
}

// NewSubmissionSummarySlice converts backend submissions into browse rows.
func NewSubmissionSummarySlice(submissions []backendapi.Submission) []SubmissionSummaryResponse {
	responses := make([]SubmissionSummaryResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, SubmissionSummaryResponse{
			ID:           submission.ID,
			AssignmentID: submission.AssignmentID,
			Student:      submission.Student,
			AnswerCount:  len(submission.Answers),
		})
	}

	return responses
}
