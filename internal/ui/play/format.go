package play

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skillcheck/internal/grading"
	"skillcheck/internal/quiz"
	"skillcheck/internal/web/views"
)

// ParseChoice maps typed input to the option value for item. Input is an
// option label (case-insensitive) or a 1-based option number.
func ParseChoice(input string, item views.QuizQuestion) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}
	for _, option := range item.Options {
		if strings.EqualFold(option.Label, trimmed) {
			return option.Value, true
		}
	}
	if n, err := strconv.Atoi(trimmed); err == nil && n >= 1 && n <= len(item.Options) {
		return item.Options[n-1].Value, true
	}
	return "", false
}

// formatScore renders the score line.
func formatScore(outcome quiz.Outcome) string {
	line := "Score: " + strconv.Itoa(outcome.Result.Score) + " / " + strconv.Itoa(outcome.Result.Total)
	if outcome.Band != "" {
		line += " (" + string(outcome.Band) + ")"
	}
	return line
}

// resultLines renders the score and feedback as plain lines.
func resultLines(outcome quiz.Outcome) []string {
	page := views.NewResultPage(outcome)
	lines := []string{formatScore(outcome)}
	if page.AttemptID != "" {
		lines = append(lines, "Attempt: "+page.AttemptID)
	}
	lines = append(lines, "", page.Heading+":")
	for _, entry := range page.Feedback {
		for _, line := range views.FeedbackLines(entry) {
			lines = append(lines, "  "+line)
		}
		lines = append(lines, "")
	}
	return lines
}

// truncate shortens text to limit runes for table cells.
func truncate(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if limit <= 3 || len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// bandColor picks the score line color.
func bandColor(outcome quiz.Outcome) lipgloss.Color {
	switch outcome.Band {
	case grading.BandExcellent:
		return lipgloss.Color("42")
	case grading.BandGood:
		return lipgloss.Color("220")
	default:
		return lipgloss.Color("196")
	}
}
