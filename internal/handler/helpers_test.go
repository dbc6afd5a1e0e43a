package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, target), "body: %s", body)
}

// pngBytes is the PNG magic number, enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

type multipartBody struct {
	buf    bytes.Buffer
	writer *multipart.Writer
}

func newMultipartBody(t *testing.T) *multipartBody {
	t.Helper()
	body := &multipartBody{}
	body.writer = multipart.NewWriter(&body.buf)
	return body
}

func (m *multipartBody) field(t *testing.T, name, value string) *multipartBody {
	t.Helper()
	require.NoError(t, m.writer.WriteField(name, value))
	return m
}

func (m *multipartBody) file(t *testing.T, field, name string, content []byte) *multipartBody {
	t.Helper()
	part, err := m.writer.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	return m
}

func (m *multipartBody) request(t *testing.T, method, target string) *http.Request {
	t.Helper()
	require.NoError(t, m.writer.Close())
	req := httptest.NewRequest(method, target, &m.buf)
	req.Header.Set("Content-Type", m.writer.FormDataContentType())
	return req
}
