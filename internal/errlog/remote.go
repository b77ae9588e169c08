package errlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPMirror mirrors entries to a remote error-log service over HTTP.
type HTTPMirror struct {
	http    *http.Client
	baseURL string
}

// NewHTTPMirror creates a mirror for the service at baseURL.
func NewHTTPMirror(baseURL string) *HTTPMirror {
	return &HTTPMirror{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

type appendReq struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	LineNo  int    `json:"lineNo,omitempty"`
}

// Append posts one entry to the store. The acknowledgment body is ignored.
func (m *HTTPMirror) Append(ctx context.Context, e Entry) error {
	b, err := json.Marshal(appendReq{Message: e.Message, Type: e.Type, LineNo: e.LineNo})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/api/log-error", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("log-error: unexpected status %s", resp.Status)
	}
	return nil
}

// Fetch retrieves the authoritative entry list.
func (m *HTTPMirror) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/api/error-logs", nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("error-logs: unexpected status %s", resp.Status)
	}
	var out struct {
		Errors []Entry `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Errors, nil
}
