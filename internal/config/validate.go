package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.Server.RequestTimeoutMs < 0 {
		add("server.request_timeout_ms", "must be >= 0")
	}

	if cfg.Questions.File == "" {
		add("questions.file", "is required")
	}
	if _, err := cfg.Questions.DelimiterRune(); err != nil {
		add("questions.delimiter", err.Error())
	}
	if cfg.Questions.SampleSize < 0 {
		add("questions.sample_size", "must be >= 0")
	}

	switch cfg.Feedback.Mode {
	case ModeSuggestions, ModeExplanations:
	default:
		add("feedback.mode", fmt.Sprintf("unsupported mode %q (expected suggestions|explanations)", cfg.Feedback.Mode))
	}
	if cfg.Feedback.MaxExplanations < 1 {
		add("feedback.max_explanations", "must be >= 1")
	}
	if cfg.Feedback.MaxChars < 0 {
		add("feedback.max_chars", "must be >= 0")
	}

	switch cfg.LLM.Provider {
	case ProviderOpenRouter, ProviderHuggingFace, ProviderOpenAI, ProviderNone:
	default:
		add("llm.provider", fmt.Sprintf("unsupported provider %q", cfg.LLM.Provider))
	}
	if cfg.Feedback.Mode == ModeExplanations {
		if cfg.LLM.Provider == ProviderNone {
			add("llm.provider", "is required when feedback.mode is explanations")
		}
		if cfg.LLM.Model == "" {
			add("llm.model", "is required when feedback.mode is explanations")
		}
	}
	if cfg.LLM.TimeoutMs < 0 {
		add("llm.timeout_ms", "must be >= 0")
	}
	if cfg.LLM.Workers < 1 {
		add("llm.workers", "must be >= 1")
	}
	if cfg.LLM.MaxTokens < 0 {
		add("llm.max_tokens", "must be >= 0")
	}
	temperature := lo.FromPtr(cfg.LLM.Temperature)
	if temperature < 0 || temperature > 2 {
		add("llm.temperature", "must be between 0 and 2")
	} else if temperature == 0 && cfg.LLM.Provider == ProviderHuggingFace {
		add("llm.temperature", "must be > 0 for the huggingface provider")
	}
	if topP := lo.FromPtr(cfg.LLM.TopP); topP < 0 || topP > 1 {
		add("llm.top_p", "must be between 0 and 1")
	}
	if cfg.LLM.Breaker.Failures < 1 {
		add("llm.breaker.failures", "must be >= 1")
	}
	if cfg.LLM.Breaker.CooldownMs < 0 {
		add("llm.breaker.cooldown_ms", "must be >= 0")
	}

	if cfg.State.TTLMinutes < 1 {
		add("state.ttl_minutes", "must be >= 1")
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		add("log.level", fmt.Sprintf("unsupported level %q", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		add("log.format", fmt.Sprintf("unsupported format %q", cfg.Log.Format))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
