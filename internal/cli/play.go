package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"skillcheck/internal/grading"
	"skillcheck/internal/quiz"
	"skillcheck/internal/ui/play"
	"skillcheck/internal/web/views"
)

// playInput allows tests to override stdin for the terminal quiz.
var playInput io.Reader = os.Stdin

// runLivePlay and runPlainPlay are test seams for the two terminal modes.
var (
	runLivePlay = func(ctx context.Context, page views.QuizPage, submit play.SubmitFunc, in io.Reader, out io.Writer, noColor bool) (quiz.Outcome, error) {
		return play.RunLive(ctx, page, submit, in, out, play.Options{NoColor: noColor})
	}
	runPlainPlay = play.RunPlain
)

// runPlay builds the handler for the play command.
func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .skillcheck/config.yml)")
		domain := flags.String("domain", "", "Question domain")
		topic := flags.String("topic", "", "Question topic")
		uiMode := flags.String("ui", "auto", "Console UI mode: auto|live|plain")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if strings.TrimSpace(*domain) == "" || strings.TrimSpace(*topic) == "" {
			fmt.Fprintln(stderr, "Missing --domain or --topic")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		in := playInput
		if in == nil {
			in = os.Stdin
		}
		ui, err := resolvePlayUI(*uiMode, *noColor, in, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if ui.warning != "" {
			fmt.Fprintln(stderr, ui.warning)
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed:\n%s\n", err.Error())
			return ExitError
		}
		application, err := buildApp(cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}
		if err := application.store.Err(); err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}

		started, err := application.service.Start(*domain, *topic)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}
		if len(started.Questions) == 0 {
			fmt.Fprintf(stderr, "No questions found for %s / %s\n", started.Domain, started.Topic)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		submit := func(ctx context.Context, answers grading.Answers) (quiz.Outcome, error) {
			return application.service.Submit(ctx, quiz.Submission{
				Domain:  started.Domain,
				Topic:   started.Topic,
				State:   started.State,
				Answers: answers,
			})
		}
		page := views.NewQuizPage(started)

		if ui.live {
			outcome, err := runLivePlay(ctx, page, submit, in, stdout, ui.noColor)
			if errors.Is(err, play.ErrAborted) {
				fmt.Fprintln(stderr, "Quiz aborted.")
				return ExitError
			}
			if err != nil {
				fmt.Fprintf(stderr, "Play failed: %v\n", err)
				return ExitError
			}
			play.WriteResult(stdout, outcome)
			return ExitOK
		}
		if _, err := runPlainPlay(ctx, page, submit, in, stdout); err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
