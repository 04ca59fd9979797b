// Package feedback turns a graded submission into the messages shown on
// the result page.
package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"skillcheck/internal/config"
	"skillcheck/internal/grading"
	"skillcheck/internal/llm"
)

// Strategy annotates a grading result with learner-facing feedback.
type Strategy interface {
	Mode() string
	Feedback(ctx context.Context, result grading.Result) []string
}

// Suggestions returns the score band text only.
type Suggestions struct{}

// Mode implements Strategy.
func (Suggestions) Mode() string { return config.ModeSuggestions }

// Feedback implements Strategy.
func (Suggestions) Feedback(_ context.Context, result grading.Result) []string {
	return []string{grading.Suggest(result.Score, result.Total)}
}

// FromConfig returns the strategy selected by cfg.Feedback.Mode.
// Explanations mode requires a generator.
func FromConfig(cfg config.Config, generator llm.Generator, logger *slog.Logger) (Strategy, error) {
	switch cfg.Feedback.Mode {
	case config.ModeSuggestions, "":
		return Suggestions{}, nil
	case config.ModeExplanations:
		if generator == nil {
			return nil, fmt.Errorf("feedback mode %q requires an llm provider", cfg.Feedback.Mode)
		}
		return NewExplainer(generator, ExplainerOptions{
			Workers:         cfg.LLM.Workers,
			Timeout:         time.Duration(cfg.LLM.TimeoutMs) * time.Millisecond,
			MaxExplanations: cfg.Feedback.MaxExplanations,
			MaxChars:        cfg.Feedback.MaxChars,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unsupported feedback mode %q", cfg.Feedback.Mode)
	}
}
