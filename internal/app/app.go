package app

import (
	"context"
	"fmt"

	"mathpad/internal/config"
	"mathpad/internal/docsearch"
	"mathpad/internal/errlog"
	"mathpad/internal/evalclient"
	"mathpad/internal/handler"
	"mathpad/internal/logstore"
	"mathpad/internal/notebook"
	"mathpad/internal/server"
)

type App struct {
	server *server.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	logStore := logstore.NewFromConfig(cfg.ErrorLog)
	var mirror errlog.Mirror
	if cfg.ErrorLogAPIURL != "" {
		mirror = errlog.NewHTTPMirror(cfg.ErrorLogAPIURL)
	} else {
		mirror = &storeMirror{store: logStore}
	}
	evaluator := evalclient.New(cfg.EvaluatorURL, cfg.EvaluatorTimeout)
	searchSvc := docsearch.New()

	sessionHandler := handler.NewSessionHandler(evaluator, mirror, notebook.Options{
		Debounce:    cfg.Debounce,
		EvalTimeout: cfg.EvaluatorTimeout,
	})
	evaluateHandler := handler.NewEvaluateHandler(evaluator)
	searchHandler := handler.NewSearchHandler(searchSvc)
	logHandler := handler.NewLogHandler(logStore)

	// Routing & Server
	mux := server.NewMux(sessionHandler, evaluateHandler, searchHandler, logHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
