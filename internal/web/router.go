package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"skillcheck/internal/logging"
	"skillcheck/internal/quiz"
)

// NewHandler builds the router for the HTML pages, the JSON API and the
// health probes.
func NewHandler(cfg Config, service *quiz.Service, logger *slog.Logger) (http.Handler, error) {
	if service == nil {
		return nil, errors.New("web: quiz service is required")
	}
	h := &handlers{service: service, logger: logging.OrDiscard(logger)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(h.logger), middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/", h.landing)
	r.Get("/quiz", h.quizPage)
	r.Post("/submit", h.submitForm)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", h.ready)

	r.Route("/api/v1", func(api chi.Router) {
		// go-chi/cors allows every origin when none are listed.
		if len(cfg.CORSOrigins) > 0 {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins: cfg.CORSOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
				ExposedHeaders: []string{"Content-Length"},
				MaxAge:         300,
			}))
		}
		api.Get("/catalog", h.apiCatalog)
		api.Get("/quiz", h.apiQuiz)
		api.Post("/submit", h.apiSubmit)
	})

	return otelhttp.NewHandler(r, "skillcheck.http"), nil
}

// requestLogger logs one line per request once the response is written.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
