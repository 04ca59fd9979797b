package llm

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"skillcheck/internal/config"
)

// NewHTTPClient returns an instrumented client for provider calls.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
		),
	}
}

// FromConfig builds the configured generator wrapped with tracing and a
// circuit breaker. A nil client selects NewHTTPClient. Provider "none"
// returns ErrNoProvider.
func FromConfig(cfg config.LLMConfig, client HTTPDoer, logger *slog.Logger) (Generator, error) {
	if client == nil {
		client = NewHTTPClient()
	}
	opts := Options{
		MaxTokens:   cfg.MaxTokens,
		Temperature: lo.FromPtr(cfg.Temperature),
		TopP:        lo.FromPtr(cfg.TopP),
	}

	var (
		generator Generator
		err       error
	)
	switch cfg.Provider {
	case config.ProviderOpenRouter:
		generator, err = NewOpenRouterGenerator(cfg.Model, cfg.APIKey, cfg.BaseURL, opts, client)
	case config.ProviderHuggingFace:
		generator, err = NewHuggingFaceGenerator(cfg.Model, cfg.APIKey, cfg.BaseURL, opts, client)
	case config.ProviderOpenAI:
		generator, err = NewOpenAIGenerator(cfg.Model, cfg.APIKey, cfg.BaseURL, opts, client)
	case config.ProviderNone, "":
		return nil, ErrNoProvider
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", cfg.Provider, err)
	}

	return NewBreakerGenerator(WithTracing(cfg.Provider, generator), BreakerSettings{
		Name:     cfg.Provider,
		Failures: cfg.Breaker.Failures,
		Cooldown: time.Duration(cfg.Breaker.CooldownMs) * time.Millisecond,
	}, logger), nil
}
