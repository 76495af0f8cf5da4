package hcl

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectContentType_HeaderHCL(t *testing.T) {
	req := httptest.NewRequest("POST", "/jobs/job-1/run", strings.NewReader(`job "x" {}`))
	req.Header.Set("Content-Type", ContentTypeHCL)

	got, err := DetectContentType(req)
	assert.NoError(t, err)
	assert.Equal(t, ContentTypeHCL, got)
}

func TestDetectContentType_HeaderJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/jobs/job-1/run", strings.NewReader(`{"job_id":"x"}`))
	req.Header.Set("Content-Type", ContentTypeJSON)

	got, err := DetectContentType(req)
	assert.NoError(t, err)
	assert.Equal(t, ContentTypeJSON, got)
}

func TestDetectContentType_SniffsJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/jobs/job-1/run", strings.NewReader(`{"job_id":"x"}`))

	got, err := DetectContentType(req)
	assert.NoError(t, err)
	assert.Equal(t, ContentTypeJSON, got)
}

func TestDetectContentType_SniffsHCLBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/jobs/job-1/run", strings.NewReader(`job "x" {
  anchor {
    source = "a"
    kind   = "point"
  }
}`))

	got, err := DetectContentType(req)
	assert.NoError(t, err)
	assert.Equal(t, ContentTypeHCL, got)
}

func TestDetectContentType_ResetsBodyForRereading(t *testing.T) {
	const content = `{"job_id":"x"}`
	req := httptest.NewRequest("POST", "/jobs/job-1/run", strings.NewReader(content))

	_, err := DetectContentType(req)
	assert.NoError(t, err)

	remaining := make([]byte, len(content))
	n, _ := req.Body.Read(remaining)
	assert.Equal(t, content, string(remaining[:n]))
}
