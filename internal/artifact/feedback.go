// Package artifact produces the downloadable feedback files generated when a
// teacher accepts or rejects a graded submission: a plain-text summary and,
// for incorrect answers with a located error span, an annotated SVG of the
// Braille text.
package artifact

import (
	"fmt"
	"strings"
)

// Artifact is a generated downloadable file.
type Artifact struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Content   string `json:"content"`
}

// FeedbackInput collects everything the export path needs.
type FeedbackInput struct {
	SubmissionID int
	Student      string
	Feedback     string
	BrailleText  string
	UrduText     string
	EnglishText  string
}

// Summary renders the plain-text feedback file.
func Summary(input FeedbackInput) Artifact {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Submission: %d\n", input.SubmissionID)
	fmt.Fprintf(&builder, "Student: %s\n", input.Student)
	builder.WriteString("\nFeedback:\n")
	builder.WriteString(input.Feedback)
	builder.WriteString("\n\nBraille text:\n")
	builder.WriteString(input.BrailleText)
	builder.WriteString("\n\nUrdu text:\n")
	builder.WriteString(input.UrduText)
	builder.WriteString("\n\nEnglish text:\n")
	builder.WriteString(input.EnglishText)
	builder.WriteString("\n")

	return Artifact{
		Name:      fmt.Sprintf("feedback_submission_%d.txt", input.SubmissionID),
		MediaType: "text/plain; charset=utf-8",
		Content:   builder.String(),
	}
}
