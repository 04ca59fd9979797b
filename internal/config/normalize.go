package config

import (
	"strings"

	"github.com/samber/lo"
)

// Defaults applied by Normalize.
const (
	DefaultAddr             = "127.0.0.1:5000"
	DefaultRequestTimeoutMs = 30000
	DefaultDelimiter        = ","
	DefaultMaxExplanations  = 5
	DefaultMaxChars         = 300
	DefaultTimeoutMs        = 10000
	DefaultWorkers          = 2
	DefaultMaxTokens        = 150
	DefaultTemperature      = 0.7
	DefaultTopP             = 0.9
	DefaultBreakerFailures  = 5
	DefaultBreakerCooldown  = 30000
	DefaultStateTTLMinutes  = 120
)

// Normalize trims string fields and fills zero values with defaults.
func Normalize(cfg *Config) {
	cfg.Server.Addr = strings.TrimSpace(cfg.Server.Addr)
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.RequestTimeoutMs == 0 {
		cfg.Server.RequestTimeoutMs = DefaultRequestTimeoutMs
	}
	origins := cfg.Server.CORSOrigins[:0]
	for _, origin := range cfg.Server.CORSOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	cfg.Server.CORSOrigins = origins

	cfg.Questions.File = strings.TrimSpace(cfg.Questions.File)
	if cfg.Questions.Delimiter == "" {
		cfg.Questions.Delimiter = DefaultDelimiter
	}

	cfg.Feedback.Mode = strings.ToLower(strings.TrimSpace(cfg.Feedback.Mode))
	if cfg.Feedback.Mode == "" {
		cfg.Feedback.Mode = ModeSuggestions
	}
	if cfg.Feedback.MaxExplanations == 0 {
		cfg.Feedback.MaxExplanations = DefaultMaxExplanations
	}
	if cfg.Feedback.MaxChars == 0 {
		cfg.Feedback.MaxChars = DefaultMaxChars
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Provider == "" {
		if cfg.Feedback.Mode == ModeExplanations {
			cfg.LLM.Provider = ProviderOpenRouter
		} else {
			cfg.LLM.Provider = ProviderNone
		}
	}
	cfg.LLM.Model = strings.TrimSpace(cfg.LLM.Model)
	cfg.LLM.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.LLM.BaseURL), "/")
	if cfg.LLM.TimeoutMs == 0 {
		cfg.LLM.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.LLM.Workers == 0 {
		cfg.LLM.Workers = DefaultWorkers
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = DefaultMaxTokens
	}
	// Unset sampling parameters get defaults; an explicit 0 is kept.
	if cfg.LLM.Temperature == nil {
		cfg.LLM.Temperature = lo.ToPtr(DefaultTemperature)
	}
	if cfg.LLM.TopP == nil {
		cfg.LLM.TopP = lo.ToPtr(DefaultTopP)
	}
	if cfg.LLM.Breaker.Failures == 0 {
		cfg.LLM.Breaker.Failures = DefaultBreakerFailures
	}
	if cfg.LLM.Breaker.CooldownMs == 0 {
		cfg.LLM.Breaker.CooldownMs = DefaultBreakerCooldown
	}

	if cfg.State.TTLMinutes == 0 {
		cfg.State.TTLMinutes = DefaultStateTTLMinutes
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
