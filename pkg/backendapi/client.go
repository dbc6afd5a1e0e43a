// Package backendapi is a typed client for the BrailleBridge processing
// backend, the REST/SSE collaborator that performs Braille OCR, speech
// transcription, translation and AI grading. Every operation is fire-once: no
// retries, no client-side timeout; cancellation is the caller's context.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "braillebridge",
		Subsystem: "backend",
		Name:      "call_duration_seconds",
		Help:      "Duration of processing backend calls",
	}, []string{"operation"})

	callFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "braillebridge",
		Subsystem: "backend",
		Name:      "call_failures_total",
		Help:      "Number of failed processing backend calls",
	}, []string{"operation"})
)

// Config defines construction options for the backend client.
type Config struct {
	// BaseURL is the root of the backend API, e.g. http://localhost:8000.
	BaseURL string
	// StaticBaseURL serves uploaded files; defaults to BaseURL.
	StaticBaseURL string
	// HTTPClient overrides the transport; defaults to http.DefaultClient.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client performs typed calls against the processing backend.
type Client struct {
	baseURL    string
	staticURL  string
	httpClient *http.Client
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// New builds a backend client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base url is required")
	}

	static := strings.TrimRight(strings.TrimSpace(cfg.StaticBaseURL), "/")
	if static == "" {
		static = base
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    base,
		staticURL:  static,
		httpClient: httpClient,
		logger:     cfg.Logger.With().Str("component", "backend_client").Logger(),
		tracer:     otel.Tracer("github.com/braillebridge/teacher-console/pkg/backendapi"),
	}, nil
}

// ResolveFileURL converts a stored file path from the backend into a URL a
// browser can fetch. Paths may carry a leading "backend/" storage prefix that
// must be stripped before joining onto the static asset base.
func (c *Client) ResolveFileURL(filePath string) string {
	cleaned := strings.TrimPrefix(strings.TrimSpace(filePath), "backend/")
	cleaned = strings.TrimLeft(cleaned, "/")
	if cleaned == "" {
		return ""
	}

	return c.staticURL + "/" + cleaned
}

func (c *Client) getJSON(ctx context.Context, operation, path string, out interface{}) error {
	return c.doJSON(ctx, operation, http.MethodGet, path, nil, out)
}

func (c *Client) postJSON(ctx context.Context, operation, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", operation, err)
	}

	return c.doJSON(ctx, operation, http.MethodPost, path, body, out)
}

func (c *Client) doJSON(ctx context.Context, operation, method, path string, body []byte, out interface{}) error {
	raw, err := c.do(ctx, operation, method, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}

	return nil
}

func (c *Client) postMultipart(ctx context.Context, operation, path string, build func(*multipart.Writer) error, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := build(writer); err != nil {
		return fmt.Errorf("build %s form: %w", operation, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close %s form: %w", operation, err)
	}

	raw, err := c.do(ctx, operation, http.MethodPost, path, writer.FormDataContentType(), &buf)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, operation, method, path, contentType string, body io.Reader) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "backend."+operation, trace.WithAttributes(
		attribute.String("backend.path", path),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	callDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		callFailures.WithLabelValues(operation).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		callFailures.WithLabelValues(operation).Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		callFailures.WithLabelValues(operation).Inc()
		remote := &RemoteError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		span.SetStatus(codes.Error, remote.Error())
		c.logger.Warn().Int("status", resp.StatusCode).Str("operation", operation).Msg("backend call failed")
		return nil, remote
	}

	return raw, nil
}

// writeFileField adds one file part to a multipart form.
func writeFileField(writer *multipart.Writer, field, filename string, content io.Reader) error {
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return err
	}

	_, err = io.Copy(part, content)
	return err
}
