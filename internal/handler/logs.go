package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"mathpad/internal/logstore"
)

// LogHandler serves the authoritative error-log store.
type LogHandler struct {
	store logstore.Store
}

func NewLogHandler(store logstore.Store) *LogHandler {
	return &LogHandler{store: store}
}

func (h *LogHandler) HandleAppend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		LineNo  int    `json:"lineNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := h.store.Append(r.Context(), logstore.Entry{
		Type:    in.Type,
		Message: in.Message,
		LineNo:  in.LineNo,
	}); err != nil {
		log.Printf("logstore: append failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to store entry")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"logged": true})
}

func (h *LogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	entries, err := h.store.List(r.Context())
	if err != nil {
		log.Printf("logstore: list failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load entries")
		return
	}
	if entries == nil {
		entries = []logstore.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": entries})
}
