package backendapi

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// StreamProgress opens the backend's one-way progress stream and delivers
// decoded events on the returned channel. The channel is closed when the
// stream ends, the transport breaks or ctx is cancelled. Transport errors are
// not surfaced; the stream simply stops, matching the best-effort nature of
// progress reporting. Callers must cancel ctx once the operation being
// observed settles, otherwise the connection leaks.
func (c *Client) StreamProgress(ctx context.Context) (<-chan ProgressEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/progress-stream", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &RemoteError{StatusCode: resp.StatusCode, Body: "progress stream unavailable"}
	}

	events := make(chan ProgressEvent)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}

			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == "" {
				continue
			}

			var event ProgressEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				c.logger.Debug().Err(err).Msg("skipping malformed progress event")
				continue
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
		// Scanner errors (broken transport, cancellation) end the stream
		// silently.
	}()

	return events, nil
}
