package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillcheck/internal/config"
)

// withInitInput swaps the init prompt input for the test.
func withInitInput(t *testing.T, input string) {
	t.Helper()
	original := initInput
	initInput = strings.NewReader(input)
	t.Cleanup(func() { initInput = original })
}

// TestInitCommandCreatesFiles verifies init writes a loadable config and sample questions.
func TestInitCommandCreatesFiles(t *testing.T) {
	withInitInput(t, "")
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".skillcheck", "config.yml")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--config", configPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	if !strings.Contains(out.String(), "Wrote") {
		t.Fatalf("expected output to include writes, got %q", out.String())
	}
	if _, statErr := os.Stat(filepath.Join(dir, config.DefaultQuestionsFile)); statErr != nil {
		t.Fatalf("expected questions file to exist: %v", statErr)
	}
	if _, loadErr := config.Load(configPath); loadErr != nil {
		t.Fatalf("expected scaffold to load: %v", loadErr)
	}
}

// TestInitCommandCustomQuestionsFile verifies the prompted file name is used.
func TestInitCommandCustomQuestionsFile(t *testing.T) {
	withInitInput(t, "y\ndata/bank.csv\n")
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".skillcheck", "config.yml")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	cfg, loadErr := config.Load(configPath)
	if loadErr != nil {
		t.Fatalf("load: %v", loadErr)
	}
	if cfg.Questions.File != filepath.Join(dir, "data", "bank.csv") {
		t.Fatalf("unexpected questions file %q", cfg.Questions.File)
	}
}

// TestInitCommandCancelled verifies a negative answer writes nothing.
func TestInitCommandCancelled(t *testing.T) {
	withInitInput(t, "n\n")
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".skillcheck", "config.yml")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no config file, got %v", statErr)
	}
}

// TestInitCommandRefusesOverwrite verifies existing configs are kept.
func TestInitCommandRefusesOverwrite(t *testing.T) {
	withInitInput(t, "")
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out, err bytes.Buffer
	code := Run([]string{"init", "--config", configPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(err.String(), "already exists") {
		t.Fatalf("expected already exists error, got %q", err.String())
	}
}

// TestInitCommandRejectsArgs verifies positional arguments are a usage error.
func TestInitCommandRejectsArgs(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run([]string{"init", "extra"}, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}

// TestInitCommandExplanationsAsksForProvider verifies the mode and provider answers reach the config.
func TestInitCommandExplanationsAsksForProvider(t *testing.T) {
	withInitInput(t, "y\n\nexplanations\nhuggingface\n")
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".skillcheck", "config.yml")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "LLM provider (openrouter|huggingface|openai)") {
		t.Fatalf("expected provider prompt, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Set "+config.EnvAPIKey) {
		t.Fatalf("expected api key hint, got %q", out.String())
	}
	cfg, loadErr := config.Load(configPath)
	if loadErr != nil {
		t.Fatalf("load: %v", loadErr)
	}
	if cfg.Feedback.Mode != config.ModeExplanations || cfg.LLM.Provider != config.ProviderHuggingFace {
		t.Fatalf("unexpected feedback settings: mode=%q provider=%q", cfg.Feedback.Mode, cfg.LLM.Provider)
	}
	if cfg.LLM.Model == "" {
		t.Fatalf("expected a starter model")
	}
}

// TestInitCommandSuggestionsSkipsProvider verifies no provider prompt appears for suggestions.
func TestInitCommandSuggestionsSkipsProvider(t *testing.T) {
	withInitInput(t, "y\n\nSuggestions\n")
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".skillcheck", "config.yml")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if strings.Contains(out.String(), "LLM provider") {
		t.Fatalf("unexpected provider prompt: %q", out.String())
	}
	cfg, loadErr := config.Load(configPath)
	if loadErr != nil {
		t.Fatalf("load: %v", loadErr)
	}
	if cfg.Feedback.Mode != config.ModeSuggestions || cfg.LLM.Provider != config.ProviderNone {
		t.Fatalf("unexpected feedback settings: mode=%q provider=%q", cfg.Feedback.Mode, cfg.LLM.Provider)
	}
}

// TestInitCommandRepromptsForCSVQuestionsFile verifies a non-csv path is refused and asked again.
func TestInitCommandRepromptsForCSVQuestionsFile(t *testing.T) {
	withInitInput(t, "y\nbank.txt\nbank.csv\n")
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".skillcheck", "config.yml")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), ".csv extension") {
		t.Fatalf("expected csv rejection, got %q", out.String())
	}
	if _, statErr := os.Stat(filepath.Join(dir, "bank.csv")); statErr != nil {
		t.Fatalf("expected bank.csv to exist: %v", statErr)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "bank.txt")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no bank.txt, got %v", statErr)
	}
}

// TestInitCommandRejectsExistingQuestionsFile verifies an existing question bank is never overwritten.
func TestInitCommandRejectsExistingQuestionsFile(t *testing.T) {
	withInitInput(t, "y\nbank.csv")
	dir := t.TempDir()
	bank := filepath.Join(dir, "bank.csv")
	if err := os.WriteFile(bank, []byte("domain,topic\n"), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	configPath := filepath.Join(dir, ".skillcheck", "config.yml")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "already exists") {
		t.Fatalf("expected already exists error, got %q", err.String())
	}
	if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no config file, got %v", statErr)
	}
	data, readErr := os.ReadFile(bank)
	if readErr != nil || string(data) != "domain,topic\n" {
		t.Fatalf("expected bank untouched, got %q (%v)", data, readErr)
	}
}

// TestInitCommandRejectsUnknownMode verifies an unknown feedback mode at end of input fails.
func TestInitCommandRejectsUnknownMode(t *testing.T) {
	withInitInput(t, "y\n\nverbose")
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".skillcheck", "config.yml")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--config", configPath}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "expected one of suggestions, explanations") {
		t.Fatalf("expected mode error, got %q", err.String())
	}
}
