package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables holding secrets.
const (
	EnvAPIKey      = "LLM_API_KEY"
	EnvStateSecret = "SKILLCHECK_STATE_SECRET"
)

// Load reads, parses, normalizes, and validates a config file.
// Relative question file paths are resolved against the project root.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}
	ApplyEnv(&cfg)
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Questions.File = QuestionsPath(path, cfg.Questions.File)
	return cfg, nil
}

// ApplyEnv copies secrets from the environment into cfg.
func ApplyEnv(cfg *Config) {
	cfg.LLM.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	cfg.State.Secret = os.Getenv(EnvStateSecret)
}
