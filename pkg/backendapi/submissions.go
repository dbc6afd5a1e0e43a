package backendapi

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// autogradeSchema guards against malformed grading responses before the
// result is trusted by the review workflow.
const autogradeSchema = `{
	"type": "object",
	"required": ["correct", "explanation"],
	"properties": {
		"correct": {"type": "boolean"},
		"explanation": {"type": "string"},
		"error_start": {"type": ["integer", "null"]},
		"error_end": {"type": ["integer", "null"]}
	}
}`

var autogradeValidator = jsonschema.MustCompileString("autograde.json", autogradeSchema)

// SubmitAnswer uploads one student answer (image or audio) for an assignment
// and returns the submission identifier. The backend runs OCR or speech
// transcription synchronously as part of this call.
func (c *Client) SubmitAnswer(ctx context.Context, assignmentID int, student, answerType string, file Upload) (int, error) {
	var response struct {
		SubmissionID int `json:"submission_id"`
	}

	path := fmt.Sprintf("/api/assignments/%d/submit", assignmentID)
	err := c.postMultipart(ctx, "submit_answer", path, func(writer *multipart.Writer) error {
		if err := writer.WriteField("student", student); err != nil {
			return err
		}
		if err := writer.WriteField("answer_type", answerType); err != nil {
			return err
		}
		return writeFileField(writer, "file", file.Filename, file.Content)
	}, &response)
	if err != nil {
		return 0, err
	}

	return response.SubmissionID, nil
}

// ListSubmissions fetches all submissions.
func (c *Client) ListSubmissions(ctx context.Context) ([]Submission, error) {
	var submissions []Submission
	if err := c.getJSON(ctx, "list_submissions", "/api/submissions", &submissions); err != nil {
		return nil, err
	}

	return submissions, nil
}

// GetSubmission fetches one submission by identifier. The backend lazily
// recomputes missing recognized-text fields as part of this call.
func (c *Client) GetSubmission(ctx context.Context, id int) (Submission, error) {
	var submission Submission
	if err := c.getJSON(ctx, "get_submission", "/api/submissions/"+strconv.Itoa(id), &submission); err != nil {
		return Submission{}, err
	}

	return submission, nil
}

// Autograde asks the backend to grade the answer at answerIndex. The raw
// response is checked against a JSON schema before it is decoded, so the
// review workflow never sees a structurally invalid grade.
func (c *Client) Autograde(ctx context.Context, submissionID, answerIndex int) (AutogradeResult, error) {
	path := fmt.Sprintf("/api/submissions/%d/autograde", submissionID)
	if answerIndex > 0 {
		path += "?answer_index=" + strconv.Itoa(answerIndex)
	}

	raw, err := c.do(ctx, "autograde", http.MethodPost, path, "application/json", nil)
	if err != nil {
		return AutogradeResult{}, err
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return AutogradeResult{}, fmt.Errorf("decode autograde response: %w", err)
	}
	if err := autogradeValidator.Validate(decoded); err != nil {
		return AutogradeResult{}, fmt.Errorf("autograde response failed schema validation: %w", err)
	}

	var result AutogradeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return AutogradeResult{}, fmt.Errorf("decode autograde response: %w", err)
	}

	return result, nil
}

// CreateExternalSubmission registers a submission whose files already live in
// the backend's storage, on behalf of an external system.
func (c *Client) CreateExternalSubmission(ctx context.Context, assignmentID int, student string, answers []ExternalAnswer) (int, error) {
	payload := map[string]interface{}{
		"assignment_id": assignmentID,
		"student":       student,
		"answers":       answers,
	}

	var response struct {
		SubmissionID int `json:"submission_id"`
	}
	if err := c.postJSON(ctx, "create_external_submission", "/api/external-submissions", payload, &response); err != nil {
		return 0, err
	}

	return response.SubmissionID, nil
}
