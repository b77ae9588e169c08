package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"mathpad/internal/docsearch"
)

// SearchHandler serves function/documentation lookups.
type SearchHandler struct {
	svc *docsearch.Service
}

func NewSearchHandler(svc *docsearch.Service) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func (h *SearchHandler) HandleLibs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"libraries": h.svc.Libraries(),
	})
}

func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	query, results := h.svc.Search(r.URL.Query().Get("name"))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"query":   query,
		"results": results,
	})
}

func (h *SearchHandler) HandleFunctionInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lib := strings.TrimSpace(r.URL.Query().Get("lib"))
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if lib == "" || name == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing lib or name")
		return
	}
	info, _ := h.svc.FunctionInfo(lib, name)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}
