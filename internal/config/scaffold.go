package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const sampleQuestions = `domain,topic,question,A,B,C,D,canswer
AI,Coding,What is Python?,A programming language,A snake,A framework,An editor,A programming language
AI,Coding,Which keyword defines a function in Python?,func,def,function,lambda,def
AI,Machine Learning,What does a loss function measure?,Training speed,Prediction error,Model size,Data volume,Prediction error
Cloud,Networking,What does DNS resolve?,IP addresses to names,Names to IP addresses,Ports to services,MAC addresses to IPs,Names to IP addresses
`

// ScaffoldOptions are the answers collected by init.
type ScaffoldOptions struct {
	QuestionsFile string
	Mode          string
	Provider      string
}

// DefaultModel returns the starter model for provider, or "" for none.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenRouter:
		return "mistralai/mistral-7b-instruct"
	case ProviderHuggingFace:
		return "google/flan-t5-large"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return ""
	}
}

// ScaffoldConfig builds the starter config for opts with every default
// spelled out.
func ScaffoldConfig(opts ScaffoldOptions) Config {
	cfg := Config{
		Version:   1,
		Questions: QuestionsConfig{File: opts.QuestionsFile},
		Feedback:  FeedbackConfig{Mode: opts.Mode},
		LLM:       LLMConfig{Provider: opts.Provider},
	}
	if cfg.Questions.File == "" {
		cfg.Questions.File = DefaultQuestionsFile
	}
	Normalize(&cfg)
	cfg.LLM.Model = DefaultModel(cfg.LLM.Provider)
	return cfg
}

// RenderScaffold encodes cfg as YAML with two-space indentation.
func RenderScaffold(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Scaffold writes a starter config at configPath and a sample question
// file at opts.QuestionsFile, relative to the project root. Existing
// files are never overwritten.
func Scaffold(configPath string, opts ScaffoldOptions) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	cfg := ScaffoldConfig(opts)
	if err := Validate(&cfg); err != nil {
		return fmt.Errorf("scaffold config is invalid: %w", err)
	}
	if err := ensureAbsent(configPath, "config"); err != nil {
		return err
	}
	questionsPath := QuestionsPath(configPath, cfg.Questions.File)
	if err := ensureAbsent(questionsPath, "questions"); err != nil {
		return err
	}

	rendered, err := RenderScaffold(cfg)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, rendered, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(questionsPath), 0o755); err != nil {
		return fmt.Errorf("create questions dir: %w", err)
	}
	if err := os.WriteFile(questionsPath, []byte(sampleQuestions), 0o644); err != nil {
		return fmt.Errorf("write questions file: %w", err)
	}
	return nil
}

func ensureAbsent(path, label string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s path %q is a directory", label, path)
		}
		return fmt.Errorf("%s file already exists at %q", label, path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s file: %w", label, err)
	}
	return nil
}
