package play

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"skillcheck/internal/grading"
	"skillcheck/internal/quiz"
	"skillcheck/internal/web/views"
)

// RunPlain asks each question on out and reads answers line by line from
// in. A blank line skips the question; end of input leaves the remaining
// questions unanswered.
func RunPlain(ctx context.Context, page views.QuizPage, submit SubmitFunc, in io.Reader, out io.Writer) (quiz.Outcome, error) {
	scanner := bufio.NewScanner(in)
	answers := grading.Answers{}
	fmt.Fprintf(out, "Skillcheck | %s / %s | %d questions\n", page.Domain, page.Topic, len(page.Questions))

	eof := false
	for _, item := range page.Questions {
		if eof {
			break
		}
		if err := ctx.Err(); err != nil {
			return quiz.Outcome{}, err
		}
		fmt.Fprintf(out, "\n%d. %s\n", item.Number, item.Text)
		for _, option := range item.Options {
			fmt.Fprintf(out, "  %s\n", option.Value)
		}
		for {
			fmt.Fprint(out, "Answer (blank to skip): ")
			if !scanner.Scan() {
				eof = true
				fmt.Fprintln(out)
				break
			}
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				break
			}
			value, ok := ParseChoice(line, item)
			if ok {
				answers[item.Number] = value
				break
			}
			fmt.Fprintf(out, "%q is not one of the options.\n", strings.TrimSpace(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return quiz.Outcome{}, fmt.Errorf("read answers: %w", err)
	}

	outcome, err := submit(ctx, answers)
	if err != nil {
		return quiz.Outcome{}, err
	}
	fmt.Fprintln(out)
	WriteResult(out, outcome)
	return outcome, nil
}

// WriteResult prints the score, the feedback and the missed questions.
func WriteResult(out io.Writer, outcome quiz.Outcome) {
	for _, line := range resultLines(outcome) {
		fmt.Fprintln(out, line)
	}
	if len(outcome.Result.Missed) == 0 {
		return
	}
	fmt.Fprintln(out, "Missed:")
	for _, row := range missedRows(outcome) {
		fmt.Fprintf(out, "  %s. %s | yours: %s | correct: %s\n", row[0], row[1], row[2], row[3])
	}
}
