package feedback

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"skillcheck/internal/config"
	"skillcheck/internal/grading"
	"skillcheck/internal/llm"
	"skillcheck/internal/logging"
	"skillcheck/internal/telemetry"
)

// Fixed feedback sentences.
const (
	NoExplanationNeeded = "No explanation needed. Great job!"
	FallbackEmpty       = "Review the reasoning behind the answer for better understanding."
	FallbackHTTP        = "Unable to provide an explanation due to an API error."
	FallbackTransport   = "Additional review is recommended to understand this concept."
)

// ExplainerOptions bound the explanation fan-out.
type ExplainerOptions struct {
	Workers         int
	Timeout         time.Duration
	MaxExplanations int
	MaxChars        int
}

// Explainer asks a generator to explain each missed question.
type Explainer struct {
	generator llm.Generator
	opts      ExplainerOptions
	logger    *slog.Logger
}

// NewExplainer returns an Explainer with defaults filled for zero options.
func NewExplainer(generator llm.Generator, opts ExplainerOptions, logger *slog.Logger) *Explainer {
	if opts.Workers < 1 {
		opts.Workers = config.DefaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultTimeoutMs * time.Millisecond
	}
	if opts.MaxExplanations < 1 {
		opts.MaxExplanations = config.DefaultMaxExplanations
	}
	return &Explainer{generator: generator, opts: opts, logger: logging.OrDiscard(logger)}
}

// Mode implements Strategy.
func (e *Explainer) Mode() string { return config.ModeExplanations }

// Feedback implements Strategy.
func (e *Explainer) Feedback(ctx context.Context, result grading.Result) []string {
	return e.Explain(ctx, result.Missed)
}

// Explain returns one block per missed item, deduplicated by exact text
// and capped at MaxExplanations. Provider failures never escape; each
// failed item carries a fallback sentence instead.
func (e *Explainer) Explain(ctx context.Context, missed []grading.Missed) []string {
	if len(missed) == 0 {
		return []string{NoExplanationNeeded}
	}
	ctx, span := telemetry.Start(ctx, "feedback.explain", attribute.Int("missed.count", len(missed)))
	defer span.End()

	blocks := make([]string, len(missed))
	var group errgroup.Group
	group.SetLimit(e.opts.Workers)
	for index, item := range missed {
		idx := index
		missedItem := item
		group.Go(func() error {
			blocks[idx] = e.explainOne(ctx, missedItem)
			return nil
		})
	}
	// explainOne never fails, so Wait only joins the workers.
	_ = group.Wait()

	unique := lo.Uniq(blocks)
	if len(unique) > e.opts.MaxExplanations {
		unique = unique[:e.opts.MaxExplanations]
	}
	span.SetAttributes(attribute.Int("explanations.count", len(unique)))
	return unique
}

func (e *Explainer) explainOne(ctx context.Context, item grading.Missed) string {
	prompt := BuildPrompt(item)
	callCtx, cancel := llm.WithCallTimeout(ctx, e.opts.Timeout)
	defer cancel()

	text, err := e.generator.Generate(callCtx, prompt)
	if err != nil {
		var httpErr *llm.HTTPError
		if errors.As(err, &httpErr) {
			e.logger.Warn("explanation request rejected", "status", httpErr.StatusCode, "error", err)
			return FormatBlock(item, FallbackHTTP)
		}
		e.logger.Warn("explanation request failed", "error", err)
		return FormatBlock(item, FallbackTransport)
	}

	explanation := Sanitize(text, prompt, e.opts.MaxChars)
	if explanation == "" {
		return FormatBlock(item, FallbackEmpty)
	}
	return FormatBlock(item, explanation)
}
