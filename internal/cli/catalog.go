package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"skillcheck/internal/question"
)

// runCatalog builds the handler for the catalog command.
func runCatalog(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .skillcheck/config.yml)")
		asJSON := flags.Bool("json", false, "Print the catalog as JSON")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Catalog failed:\n%s\n", err.Error())
			return ExitError
		}
		delimiter, err := cfg.Questions.DelimiterRune()
		if err != nil {
			fmt.Fprintf(stderr, "Catalog failed: %v\n", err)
			return ExitError
		}
		records, err := question.LoadFile(cfg.Questions.File, delimiter)
		if err != nil {
			fmt.Fprintf(stderr, "Catalog failed: %v\n", err)
			return ExitError
		}

		catalog := question.Catalog(records)
		if *asJSON {
			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(catalog); err != nil {
				fmt.Fprintf(stderr, "Catalog failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		if len(catalog) == 0 {
			fmt.Fprintln(stdout, "No questions found.")
			return ExitOK
		}
		for _, entry := range catalog {
			fmt.Fprintln(stdout, entry.Domain)
			for _, topic := range entry.Topics {
				fmt.Fprintf(stdout, "  %-30s %d\n", topic.Topic, topic.Count)
			}
		}
		return ExitOK
	}
}
