package cli

import (
	"bytes"
	"strings"
	"testing"
)

// TestRootHelpListsQuizCommands verifies --help lists every command with its summary.
func TestRootHelpListsQuizCommands(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run([]string{"--help"}, &out, &err); code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	output := out.String()
	for _, fragment := range []string{
		"skillcheck <command> [options]",
		"play     Take a quiz in the terminal",
		"serve    Serve the quiz over HTTP",
		"catalog  List domains and topics with question counts",
		"init     Scaffold .skillcheck/config.yml",
		"validate Validate the config and the question file",
	} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected %q in help:\n%s", fragment, output)
		}
	}
}

// TestNoArgsShowsUsage verifies a bare invocation prints usage and exits with a usage code.
func TestNoArgsShowsUsage(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run(nil, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(out.String(), "skillcheck <command>") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

// TestUnknownCommandPrintsUsageToStderr verifies a mistyped command is reported on stderr only.
func TestUnknownCommandPrintsUsageToStderr(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run([]string{"quiz"}, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(err.String(), "Unknown command: quiz") || !strings.Contains(err.String(), "play") {
		t.Fatalf("expected unknown command with usage, got %q", err.String())
	}
}

// TestCommandHelpShowsOptions verifies each quiz command documents its own flags.
func TestCommandHelpShowsOptions(t *testing.T) {
	cases := map[string][]string{
		"play":    {"--domain <domain>", "--topic <topic>", "--ui auto|live|plain", "--no-color"},
		"serve":   {"--addr <addr>", "Serve the quiz over HTTP"},
		"catalog": {"--json", "question counts"},
		"init":    {"--config <path>"},
	}
	for name, fragments := range cases {
		var out, err bytes.Buffer
		if code := Run([]string{name, "--help"}, &out, &err); code != ExitOK {
			t.Fatalf("%s: expected exit %d, got %d", name, ExitOK, code)
		}
		if err.Len() != 0 {
			t.Fatalf("%s: expected no stderr output, got %q", name, err.String())
		}
		for _, fragment := range fragments {
			if !strings.Contains(out.String(), fragment) {
				t.Fatalf("%s: expected %q in help:\n%s", name, fragment, out.String())
			}
		}
	}
}

// TestCommandsRejectUnknownFlags verifies flag errors map to the usage exit code.
func TestCommandsRejectUnknownFlags(t *testing.T) {
	for _, name := range []string{"play", "serve", "catalog"} {
		var out, err bytes.Buffer
		if code := Run([]string{name, "--shuffle"}, &out, &err); code != ExitUsage {
			t.Fatalf("%s: expected exit %d, got %d", name, ExitUsage, code)
		}
		if !strings.Contains(err.String(), "invalid arguments") || !strings.Contains(err.String(), "skillcheck "+name) {
			t.Fatalf("%s: expected flag error with usage, got %q", name, err.String())
		}
	}
}
