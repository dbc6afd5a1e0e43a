package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
)

// GenerateLessonPack asks the backend to build a downloadable archive from
// diagram images and prompts. The call blocks until the archive is ready;
// stage-level progress arrives separately on the progress stream.
func (c *Client) GenerateLessonPack(ctx context.Context, title string, assignmentID *int, files []Upload, prompts []string) ([]byte, error) {
	if len(files) != len(prompts) {
		return nil, fmt.Errorf("files and prompts length mismatch: %d vs %d", len(files), len(prompts))
	}

	promptsJSON, err := json.Marshal(prompts)
	if err != nil {
		return nil, fmt.Errorf("encode prompts: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		if err := writeFileField(writer, "files", file.Filename, file.Content); err != nil {
			return nil, fmt.Errorf("build lesson_pack form: %w", err)
		}
	}
	if err := writer.WriteField("prompts", string(promptsJSON)); err != nil {
		return nil, fmt.Errorf("build lesson_pack form: %w", err)
	}
	if err := writer.WriteField("title", title); err != nil {
		return nil, fmt.Errorf("build lesson_pack form: %w", err)
	}
	if assignmentID != nil {
		if err := writer.WriteField("assignment_id", strconv.Itoa(*assignmentID)); err != nil {
			return nil, fmt.Errorf("build lesson_pack form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close lesson_pack form: %w", err)
	}

	return c.do(ctx, "lesson_pack", http.MethodPost, "/api/lesson-pack", writer.FormDataContentType(), &buf)
}
