// Package grading scores submitted answers against the questions that were
// shown and maps the score to a suggestion band.
package grading

import (
	"strings"

	"skillcheck/internal/question"
)

// Answers maps 1-based question positions to the submitted option value.
type Answers map[int]string

// Missed describes one question answered incorrectly or left blank.
type Missed struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

// Result is the outcome of grading one submission.
type Result struct {
	Score  int      `json:"score"`
	Total  int      `json:"total"`
	Missed []Missed `json:"missed"`
}

// Ratio returns Score/Total, or 0 when Total is 0.
func (result Result) Ratio() float64 {
	if result.Total == 0 {
		return 0
	}
	return float64(result.Score) / float64(result.Total)
}

const optionLabelSeparator = ". "

// StripOptionLabel removes a leading "<label>. " from a submitted option
// value. Values without the separator are returned unchanged.
func StripOptionLabel(value string) string {
	if _, rest, ok := strings.Cut(value, optionLabelSeparator); ok {
		return rest
	}
	return value
}

// Grade scores answers against questions by position. A missing answer
// counts as the empty string. Comparison is exact.
func Grade(questions []question.Record, answers Answers) Result {
	result := Result{Total: len(questions), Missed: []Missed{}}
	for i, record := range questions {
		submitted := StripOptionLabel(answers[i+1])
		if submitted == record.CorrectAnswer {
			result.Score++
			continue
		}
		result.Missed = append(result.Missed, Missed{
			Question:      record.Question,
			UserAnswer:    submitted,
			CorrectAnswer: record.CorrectAnswer,
		})
	}
	return result
}
