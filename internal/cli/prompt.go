package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"skillcheck/internal/config"
)

// readLine reads a line from the reader, trimming line endings.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return strings.TrimRight(line, "\r\n"), io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptString asks for a value until validate accepts it. An empty line
// selects defaultValue. Rejected input is reported and asked again; at end
// of input the rejection is returned.
func promptString(reader *bufio.Reader, out io.Writer, label, defaultValue string, validate func(string) error) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, defaultValue)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return "", err
		}
		value := strings.TrimSpace(line)
		if value == "" {
			value = defaultValue
		}
		if value == "" {
			if err == io.EOF {
				return "", fmt.Errorf("missing input for %s", label)
			}
			continue
		}
		if validate != nil {
			if verr := validate(value); verr != nil {
				if err == io.EOF {
					return "", fmt.Errorf("%s: %w", label, verr)
				}
				fmt.Fprintf(out, "Invalid input: %v\n", verr)
				continue
			}
		}
		return value, nil
	}
}

// promptChoice asks for one of choices, matched case-insensitively.
func promptChoice(reader *bufio.Reader, out io.Writer, label string, choices []string, defaultValue string) (string, error) {
	prompt := fmt.Sprintf("%s (%s)", label, strings.Join(choices, "|"))
	value, err := promptString(reader, out, prompt, defaultValue, func(value string) error {
		if !slices.Contains(choices, strings.ToLower(value)) {
			return fmt.Errorf("expected one of %s", strings.Join(choices, ", "))
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return strings.ToLower(value), nil
}

// promptYesNo prompts for a yes/no response with a default.
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", label, suffix)
		line, err := readLine(reader)
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if err == io.EOF {
				return false, fmt.Errorf("invalid response %q", line)
			}
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

// questionsFileValidator accepts a .csv path that init can create next to
// configPath: the file must not exist and no parent may be a regular file.
func questionsFileValidator(configPath string) func(string) error {
	return func(value string) error {
		if !strings.EqualFold(filepath.Ext(value), ".csv") {
			return errors.New("questions file must have a .csv extension")
		}
		path := config.QuestionsPath(configPath, value)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
			if info, err := os.Stat(dir); err == nil {
				if !info.IsDir() {
					return fmt.Errorf("%s is not a directory", dir)
				}
				return nil
			}
			if parent := filepath.Dir(dir); parent == dir {
				return nil
			}
		}
	}
}
