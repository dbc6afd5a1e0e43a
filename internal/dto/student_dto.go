package dto

import "github.com/braillebridge/teacher-console/pkg/backendapi"

// StudentResponse is one student profile row.
type StudentResponse struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Strengths  []string `json:"strengths"`
	Challenges []string `json:"challenges"`
}

// NewStudentResponseSlice converts backend student profiles.
func NewStudentResponseSlice(students []backendapi.StudentProfile) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, StudentResponse{
			ID:         student.ID,
			Name:       student.Name,
			Strengths:  student.Strengths,
			Challenges: student.Challenges,
		})
	}

	return responses
}
