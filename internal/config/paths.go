package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConfigDirName        = ".skillcheck"
	ConfigFileName       = "config.yml"
	DefaultQuestionsFile = "quiz_questions.csv"

	// EnvConfigPath points every command at one config file, skipping
	// discovery.
	EnvConfigPath = "SKILLCHECK_CONFIG"
)

// ErrConfigNotFound means no config was found from the start directory up.
var ErrConfigNotFound = errors.New("no skillcheck config found (run `skillcheck init`)")

// ConfigPath returns root/.skillcheck/config.yml.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}

// ProjectRootFromConfigPath is the directory question files are relative
// to: the parent of .skillcheck, or the config's own directory otherwise.
func ProjectRootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// ResolvePath joins a relative path onto root.
func ResolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) || strings.TrimSpace(root) == "" {
		return path
	}
	return filepath.Join(root, path)
}

// QuestionsPath resolves a question file named in the config at configPath.
func QuestionsPath(configPath, file string) string {
	return ResolvePath(ProjectRootFromConfigPath(configPath), file)
}

// FindConfigPath returns $SKILLCHECK_CONFIG when set, otherwise the nearest
// .skillcheck/config.yml at or above startDir ("" means the working
// directory).
func FindConfigPath(startDir string) (string, error) {
	if override := strings.TrimSpace(os.Getenv(EnvConfigPath)); override != "" {
		path, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", EnvConfigPath, err)
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s: %w", EnvConfigPath, err)
		}
		return path, nil
	}

	if strings.TrimSpace(startDir) == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := ConfigPath(dir)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("config path %q is a directory", candidate)
		case err == nil:
			return candidate, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("stat config path %q: %w", candidate, err)
		}
		// A bare .skillcheck directory marks the project even without a config.
		if info, err := os.Stat(filepath.Dir(candidate)); err == nil && info.IsDir() {
			return "", fmt.Errorf("found %q but %s is missing", filepath.Dir(candidate), ConfigFileName)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or its parents", ErrConfigNotFound, startDir)
		}
		dir = parent
	}
}
