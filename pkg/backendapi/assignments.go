package backendapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
)

// Upload is an in-memory file destined for a multipart form.
type Upload struct {
	Filename string
	Content  io.Reader
}

// CreateAssignment uploads diagram images with their prompts and returns the
// new assignment identifier. contexts optionally carries per-diagram grading
// context; when nil the backend falls back to the prompt text.
func (c *Client) CreateAssignment(ctx context.Context, title string, files []Upload, prompts, contexts []string) (int, error) {
	if len(files) != len(prompts) {
		return 0, fmt.Errorf("files and prompts length mismatch: %d vs %d", len(files), len(prompts))
	}

	promptsJSON, err := json.Marshal(prompts)
	if err != nil {
		return 0, fmt.Errorf("encode prompts: %w", err)
	}

	var response struct {
		AssignmentID int `json:"assignment_id"`
	}

	err = c.postMultipart(ctx, "create_assignment", "/api/assignments", func(writer *multipart.Writer) error {
		for _, file := range files {
			if err := writeFileField(writer, "files", file.Filename, file.Content); err != nil {
				return err
			}
		}
		if err := writer.WriteField("prompts", string(promptsJSON)); err != nil {
			return err
		}
		if err := writer.WriteField("title", title); err != nil {
			return err
		}
		if len(contexts) > 0 {
			contextsJSON, err := json.Marshal(contexts)
			if err != nil {
				return err
			}
			return writer.WriteField("contexts", string(contextsJSON))
		}
		return nil
	}, &response)
	if err != nil {
		return 0, err
	}

	return response.AssignmentID, nil
}

// ListAssignments fetches all assignments.
func (c *Client) ListAssignments(ctx context.Context) ([]Assignment, error) {
	var assignments []Assignment
	if err := c.getJSON(ctx, "list_assignments", "/api/assignments", &assignments); err != nil {
		return nil, err
	}

	return assignments, nil
}

// GetAssignment fetches one assignment by identifier.
func (c *Client) GetAssignment(ctx context.Context, id int) (Assignment, error) {
	var assignment Assignment
	if err := c.getJSON(ctx, "get_assignment", "/api/assignments/"+strconv.Itoa(id), &assignment); err != nil {
		return Assignment{}, err
	}

	return assignment, nil
}
