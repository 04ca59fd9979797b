package llm

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"skillcheck/internal/telemetry"
)

type tracedGenerator struct {
	provider string
	next     Generator
}

// WithTracing records an llm.generate span around every call.
func WithTracing(provider string, next Generator) Generator {
	return &tracedGenerator{provider: provider, next: next}
}

func (g *tracedGenerator) Generate(ctx context.Context, prompt string) (text string, err error) {
	ctx, span := telemetry.Start(ctx, "llm.generate",
		attribute.String("llm.provider", g.provider),
		attribute.Int("llm.prompt_chars", len(prompt)),
	)
	defer telemetry.Finish(span, &err)

	text, err = g.next.Generate(ctx, prompt)
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		span.SetAttributes(attribute.Int("http.status_code", httpErr.StatusCode))
	}
	if err == nil {
		span.SetAttributes(attribute.Int("llm.response_chars", len(text)))
	}
	return text, err
}
