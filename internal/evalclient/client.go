// Package evalclient talks to the remote expression evaluator: it sends the
// full line set of a page plus the cross-page context snapshot and receives
// per-line results and the page's updated variable context.
package evalclient

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

// DefaultTimeout bounds a single evaluation round. A hung evaluator fails
// the round as a transport error instead of pinning the session in
// "Evaluating..." forever.
const DefaultTimeout = 30 * time.Second

// StatusError reports a request the evaluator endpoint rejected (non-2xx).
// Transport-level failures are returned as plain errors instead.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("evaluator: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a client for the evaluator at baseURL. timeout <= 0 falls back
// to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

type evaluateReq struct {
	Lines      []string                  `json:"lines"`
	StartIndex int                       `json:"startIndex"`
	Context    map[string]map[string]any `json:"context"`
}

type evaluateResp struct {
	Results []string       `json:"results"`
	Context map[string]any `json:"context"`
	Error   string         `json:"error"`
}

// Evaluate submits one round. results is aligned to lines[startIndex:];
// context is the page's full variable mapping after evaluating top to
// bottom.
func (c *Client) Evaluate(ctx context.Context, lines []string, startIndex int, contexts map[string]map[string]any) ([]string, map[string]any, error) {
	if lines == nil {
		lines = []string{}
	}
	if contexts == nil {
		contexts = map[string]map[string]any{}
	}
	b, err := json.Marshal(evaluateReq{Lines: lines, StartIndex: startIndex, Context: contexts})
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/evaluate", bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, &StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	var out evaluateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, nil, &StatusError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	if out.Context == nil {
		out.Context = map[string]any{}
	}
	return out.Results, out.Context, nil
}

// readErrorMessage prefers the server-supplied {"error": ...} message and
// falls back to the raw body, truncated.
func readErrorMessage(r io.Reader) string {
	const max = 2048
	body, _ := io.ReadAll(io.LimitReader(r, max))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return payload.Error
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "evaluation request failed"
	}
	return msg
}
