package service

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

// readUpload buffers one multipart file and sniffs its MIME type. The
// declared content type from the browser is not trusted.
func readUpload(header *multipart.FileHeader, maxBytes int64) (backendapi.Upload, string, error) {
	if header == nil {
		return backendapi.Upload{}, "", fmt.Errorf("%w: file is required", ErrValidation)
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return backendapi.Upload{}, "", fmt.Errorf("%w: file %s exceeds the upload limit", ErrValidation, header.Filename)
	}

	src, err := header.Open()
	if err != nil {
		return backendapi.Upload{}, "", fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return backendapi.Upload{}, "", fmt.Errorf("read upload %s: %w", header.Filename, err)
	}

	mime := mimetype.Detect(buf.Bytes())
	upload := backendapi.Upload{Filename: header.Filename, Content: bytes.NewReader(buf.Bytes())}
	return upload, mime.String(), nil
}

// readImageUploads buffers and validates a batch of diagram images.
func readImageUploads(headers []*multipart.FileHeader, maxBytes int64) ([]backendapi.Upload, error) {
	uploads := make([]backendapi.Upload, 0, len(headers))
	for _, header := range headers {
		upload, mime, err := readUpload(header, maxBytes)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(mime, "image/") {
			return nil, fmt.Errorf("%w: %s is not an image (%s)", ErrValidation, header.Filename, mime)
		}
		uploads = append(uploads, upload)
	}

	return uploads, nil
}
