package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Config is the root of .skillcheck/config.yml.
type Config struct {
	Version   int             `yaml:"version"`
	Server    ServerConfig    `yaml:"server"`
	Questions QuestionsConfig `yaml:"questions"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	LLM       LLMConfig       `yaml:"llm"`
	State     StateConfig     `yaml:"state"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr             string   `yaml:"addr"`
	RequestTimeoutMs int      `yaml:"request_timeout_ms"`
	CORSOrigins      []string `yaml:"cors_origins"`
}

type QuestionsConfig struct {
	File       string `yaml:"file"`
	Delimiter  string `yaml:"delimiter"`
	SampleSize int    `yaml:"sample_size"`
}

type FeedbackConfig struct {
	Mode            string `yaml:"mode"`
	MaxExplanations int    `yaml:"max_explanations"`
	MaxChars        int    `yaml:"max_chars"`
}

type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	TimeoutMs   int           `yaml:"timeout_ms"`
	Workers     int           `yaml:"workers"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature *float64      `yaml:"temperature"`
	TopP        *float64      `yaml:"top_p"`
	Breaker     BreakerConfig `yaml:"breaker"`

	// APIKey is read from the environment, never from the file.
	APIKey string `yaml:"-"`
}

type BreakerConfig struct {
	Failures   int `yaml:"failures"`
	CooldownMs int `yaml:"cooldown_ms"`
}

type StateConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`

	// Secret is read from the environment, never from the file.
	Secret string `yaml:"-"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Feedback modes.
const (
	ModeSuggestions  = "suggestions"
	ModeExplanations = "explanations"
)

// LLM providers.
const (
	ProviderOpenRouter  = "openrouter"
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderNone        = "none"
)

// DelimiterRune returns the field delimiter as a rune. It must be a single
// character other than a quote or line break.
func (q QuestionsConfig) DelimiterRune() (rune, error) {
	if utf8.RuneCountInString(q.Delimiter) != 1 {
		return 0, errors.New("must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(q.Delimiter)
	if r == '"' || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("invalid delimiter %q", q.Delimiter)
	}
	return r, nil
}
