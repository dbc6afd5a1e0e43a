package dto

import "github.com/braillebridge/teacher-console/pkg/backendapi"

// AssignmentCreateRequest describes the multipart payload for creating an
// assignment. Prompts and contexts arrive as JSON arrays alongside the
// diagram files; contexts is optional per-diagram grading context.
type AssignmentCreateRequest struct {
	Title    string   `form:"title" json:"title" validate:"required,min=1"`
	Prompts  []string `json:"prompts" validate:"required,min=1,dive,required"`
	Contexts []string `json:"contexts" validate:"omitempty"`
}

// DiagramResponse is one diagram with its image resolved to a fetchable URL.
type DiagramResponse struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
}

// AssignmentResponse is the serialized assignment returned to clients.
type AssignmentResponse struct {
	ID       int               `json:"id"`
	Title    string            `json:"title"`
	Diagrams []DiagramResponse `json:"diagrams"`
}

// NewAssignmentResponse converts a backend assignment, resolving stored image
// paths through resolve.
func NewAssignmentResponse(assignment backendapi.Assignment, resolve func(string) string) AssignmentResponse {
	diagrams := make([]DiagramResponse, 0, len(assignment.Diagrams))
	for _, diagram := range assignment.Diagrams {
		diagrams = append(diagrams, DiagramResponse{
			ImageURL: resolve(diagram.ImagePath),
			Prompt:   diagram.Prompt,
		})
	}

	return AssignmentResponse{
		ID:       assignment.ID,
		Title:    assignment.Title,
		Diagrams: diagrams,
	}
}

// NewAssignmentResponseSlice converts a slice of backend assignments.
func NewAssignmentResponseSlice(assignments []backendapi.Assignment, resolve func(string) string) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment, resolve))
	}

	return responses
}
