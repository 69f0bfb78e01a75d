package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// maxResponseBody caps how much of an error response is read.
const maxResponseBody = 64 << 10

// request is the backend-specific shape of one subscription call.
type request struct {
	url    string
	header http.Header
	body   any
}

// httpBackend posts a signup to a third-party subscription API.
type httpBackend struct {
	name      string
	client    *http.Client
	build     func(Signup) request
	errorPath string // gjson path of the backend's error message
}

func (b *httpBackend) Name() string {
	return b.name
}

// Submit sends exactly one POST. No retries.
func (b *httpBackend) Submit(ctx context.Context, s Signup) error {
	req := b.build(s)

	payload, err := json.Marshal(req.body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", b.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", b.name, err)
	}
	for key, values := range req.header {
		httpReq.Header[key] = values
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNetwork, b.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	return &RemoteError{
		Backend: b.name,
		Status:  resp.StatusCode,
		Message: errorMessage(body, b.errorPath, resp.StatusCode),
	}
}

// errorMessage extracts the backend's error message, falling back to the status text.
func errorMessage(body []byte, path string, status int) string {
	if path != "" && gjson.ValidBytes(body) {
		if msg := strings.TrimSpace(gjson.GetBytes(body, path).String()); msg != "" {
			return msg
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}
