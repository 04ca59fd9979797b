package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"skillcheck/internal/config"
)

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: ./.skillcheck/config.yml)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		target := strings.TrimSpace(*configPath)
		if target == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			target = config.ConfigPath(wd)
		}
		target, err := filepath.Abs(target)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if info, err := os.Stat(target); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", target)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", target)
			return ExitError
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		reader := bufio.NewReader(in)

		confirm, err := promptYesNo(reader, stdout, fmt.Sprintf("Initialize Skillcheck config in %s?", filepath.Dir(target)), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}
		opts, err := promptScaffoldOptions(reader, stdout, target)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		if err := config.Scaffold(target, opts); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", target)
		fmt.Fprintf(stdout, "Wrote %s\n", config.QuestionsPath(target, opts.QuestionsFile))
		if opts.Mode == config.ModeExplanations {
			fmt.Fprintf(stdout, "Set %s before running play or serve.\n", config.EnvAPIKey)
		}
		return ExitOK
	}
}

// promptScaffoldOptions asks for the question file and feedback settings.
// The provider is only asked for when explanations are chosen.
func promptScaffoldOptions(reader *bufio.Reader, out io.Writer, configPath string) (config.ScaffoldOptions, error) {
	var opts config.ScaffoldOptions
	var err error
	opts.QuestionsFile, err = promptString(reader, out, "Questions file", config.DefaultQuestionsFile, questionsFileValidator(configPath))
	if err != nil {
		return opts, err
	}
	opts.Mode, err = promptChoice(reader, out, "Feedback mode", []string{config.ModeSuggestions, config.ModeExplanations}, config.ModeSuggestions)
	if err != nil {
		return opts, err
	}
	opts.Provider = config.ProviderNone
	if opts.Mode == config.ModeExplanations {
		providers := []string{config.ProviderOpenRouter, config.ProviderHuggingFace, config.ProviderOpenAI}
		opts.Provider, err = promptChoice(reader, out, "LLM provider", providers, config.ProviderOpenRouter)
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}
