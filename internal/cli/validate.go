package cli

import (
	"flag"
	"fmt"
	"io"

	"skillcheck/internal/question"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .skillcheck/config.yml)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		fmt.Fprintln(stdout, "Config OK")

		delimiter, err := cfg.Questions.DelimiterRune()
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\nquestions.delimiter: %v\n", err)
			return ExitError
		}
		records, err := question.LoadFile(cfg.Questions.File, delimiter)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		if err := question.ValidateRecords(records); err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		fmt.Fprintf(stdout, "Questions OK (%d records)\n", len(records))
		return ExitOK
	}
}
