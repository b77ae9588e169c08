package server

import (
	"net/http"

	"mathpad/internal/handler"
	"mathpad/internal/middleware"
)

func NewMux(
	sessionHandler *handler.SessionHandler,
	evaluateHandler *handler.EvaluateHandler,
	searchHandler *handler.SearchHandler,
	logHandler *handler.LogHandler,
) http.Handler {
	mux := http.NewServeMux()

	// Interactive editor sessions
	mux.HandleFunc("/ws/session", sessionHandler.HandleSession)

	// Evaluator proxy
	mux.HandleFunc("/api/evaluate", evaluateHandler.HandleEvaluate)

	// Function/documentation search
	mux.HandleFunc("/api/libs", searchHandler.HandleLibs)
	mux.HandleFunc("/api/function-search", searchHandler.HandleSearch)
	mux.HandleFunc("/api/function-info", searchHandler.HandleFunctionInfo)

	// Error-log store
	mux.HandleFunc("/api/log-error", logHandler.HandleAppend)
	mux.HandleFunc("/api/error-logs", logHandler.HandleList)

	return middleware.CORS(mux)
}
