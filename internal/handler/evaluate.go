package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mathpad/internal/evalclient"
)

// EvaluateHandler forwards evaluation requests to the remote evaluator for
// clients that are not using a websocket session.
type EvaluateHandler struct {
	client *evalclient.Client
}

func NewEvaluateHandler(client *evalclient.Client) *EvaluateHandler {
	return &EvaluateHandler{client: client}
}

func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Lines      []string                  `json:"lines"`
		StartIndex int                       `json:"startIndex"`
		Context    map[string]map[string]any `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if in.Lines == nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid lines")
		return
	}

	results, context, err := h.client.Evaluate(r.Context(), in.Lines, in.StartIndex, in.Context)
	if err != nil {
		var se *evalclient.StatusError
		if errors.As(err, &se) {
			writeJSONError(w, http.StatusBadGateway, se.Message)
			return
		}
		writeJSONError(w, http.StatusBadGateway, "evaluation service unreachable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"results": results,
		"context": context,
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": message})
}
