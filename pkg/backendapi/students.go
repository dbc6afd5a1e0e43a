package backendapi

import "context"

// ListStudents fetches all student profiles.
func (c *Client) ListStudents(ctx context.Context) ([]StudentProfile, error) {
	var students []StudentProfile
	if err := c.getJSON(ctx, "list_students", "/api/students", &students); err != nil {
		return nil, err
	}

	return students, nil
}

// AnalyzeFeedback distils teacher feedback into a short trait and records it
// on the named student's profile server-side. Correct answers become
// strengths, incorrect ones challenges.
func (c *Client) AnalyzeFeedback(ctx context.Context, feedback string, isCorrect bool, studentName string) (FeedbackAnalysis, error) {
	payload := map[string]interface{}{
		"feedback":     feedback,
		"is_correct":   isCorrect,
		"student_name": studentName,
	}

	var analysis FeedbackAnalysis
	if err := c.postJSON(ctx, "analyze_feedback", "/api/feedback/analyze", payload, &analysis); err != nil {
		return FeedbackAnalysis{}, err
	}

	return analysis, nil
}

// CheckHealth reports backend liveness and OCR model availability.
func (c *Client) CheckHealth(ctx context.Context) (Health, error) {
	var health Health
	if err := c.getJSON(ctx, "health", "/api/health", &health); err != nil {
		return Health{}, err
	}

	return health, nil
}
