package play

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"skillcheck/internal/quiz"
)

// missedColumns returns the result table columns.
func missedColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth sizes the question column to the terminal width.
func columnsForWidth(width int) []table.Column {
	questionWidth := max(width-4-24-24-8, 20)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Question", Width: questionWidth},
		{Title: "Your answer", Width: 24},
		{Title: "Correct", Width: 24},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// missedRows lists the missed questions of an outcome.
func missedRows(outcome quiz.Outcome) []table.Row {
	rows := make([]table.Row, 0, len(outcome.Result.Missed))
	for i, missed := range outcome.Result.Missed {
		answer := missed.UserAnswer
		if answer == "" {
			answer = "(blank)"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			truncate(missed.Question, 60),
			truncate(answer, 24),
			truncate(missed.CorrectAnswer, 24),
		})
	}
	return rows
}
