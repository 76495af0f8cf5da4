package hcl

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

const (
	// ContentTypeHCL is the media type an HTTP caller sets to submit a job
	// spec as a native HCL job block.
	ContentTypeHCL = "application/vnd.hcl"

	// ContentTypeJSON is the standard JSON media type.
	ContentTypeJSON = "application/json"
)

// DetectContentType determines whether r's body is an HCL job block or a
// JSON job spec, trusting the Content-Type header when it names one of the
// two known types and falling back to sniffing the body otherwise. r.Body
// is fully buffered and replaced so callers can still decode it afterward.
func DetectContentType(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			if mediaType == ContentTypeHCL {
				return ContentTypeHCL, nil
			}
			if mediaType == ContentTypeJSON {
				return ContentTypeJSON, nil
			}
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	trimmedBody := bytes.TrimSpace(body)
	if len(trimmedBody) > 0 {
		firstChar := trimmedBody[0]
		if firstChar == '{' || firstChar == '[' {
			return ContentTypeJSON, nil
		}
		if IsHCL(trimmedBody) {
			return ContentTypeHCL, nil
		}
	}

	return ContentTypeJSON, nil
}

// IsHCLBasedOnExtension reports whether filename's extension names an HCL
// job-spec file.
func IsHCLBasedOnExtension(filename string) bool {
	return strings.HasSuffix(filename, ".hcl") ||
		strings.HasSuffix(filename, ".tf") ||
		strings.HasSuffix(filename, ".tfvars")
}
