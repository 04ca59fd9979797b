// Package web serves the quiz over HTTP: HTML pages for browsers and a
// small JSON API under /api/v1.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"skillcheck/internal/logging"
	"skillcheck/internal/quiz"
)

// Config captures the settings for serving the quiz.
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// Serve starts an HTTP server for the quiz and blocks until ctx is done or
// the listener fails.
func Serve(ctx context.Context, cfg Config, service *quiz.Service, logger *slog.Logger) error {
	if ctx == nil {
		return errors.New("web: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("web: addr is required")
	}
	logger = logging.OrDiscard(logger)
	handler, err := NewHandler(cfg, service, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	logger.Info("web server listening", "addr", cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		logger.Info("web server stopped")
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
