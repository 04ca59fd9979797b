package cli

import (
	"os"
	"path/filepath"
	"testing"
)

const testQuestions = `domain,topic,question,A,B,canswer
AI,Coding,What is Python?,A programming language,A snake,A programming language
AI,Coding,Which keyword defines a function?,func,def,def
Cloud,Networking,What does DNS resolve?,Names to IP,IP to names,Names to IP
`

// writeProject creates .skillcheck/config.yml and a question file under a
// temp root and returns the config path.
func writeProject(t *testing.T, extraConfig string, questions string) string {
	t.Helper()
	root := t.TempDir()
	configPath := filepath.Join(root, ".skillcheck", "config.yml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	body := "version: 1\nquestions:\n  file: \"questions.csv\"\n" + extraConfig
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if questions != "" {
		if err := os.WriteFile(filepath.Join(root, "questions.csv"), []byte(questions), 0o644); err != nil {
			t.Fatalf("write questions: %v", err)
		}
	}
	return configPath
}
