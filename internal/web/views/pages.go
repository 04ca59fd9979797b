// Package views holds the page data and HTML components for the web UI.
package views

//go:generate templ generate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skillcheck/internal/config"
	"skillcheck/internal/question"
	"skillcheck/internal/quiz"
)

// AnswerFieldPrefix prefixes the form field holding each numbered answer.
const AnswerFieldPrefix = "answer_"

// Option is one answer choice. Its form value is "<Label>. <Text>".
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// QuizQuestion is one numbered question on the quiz form.
type QuizQuestion struct {
	Number  int      `json:"number"`
	Text    string   `json:"question"`
	Options []Option `json:"options"`
}

// LandingPage lists the catalog and the selection form.
type LandingPage struct {
	Catalog []question.CatalogEntry
	Notice  string
}

// QuizPage renders the questions for one attempt.
type QuizPage struct {
	Domain    string         `json:"domain"`
	Topic     string         `json:"topic"`
	State     string         `json:"state"`
	AttemptID string         `json:"attempt_id"`
	ExpiresAt time.Time      `json:"expires_at"`
	Questions []QuizQuestion `json:"questions"`
}

// ResultPage shows the score and the feedback list.
type ResultPage struct {
	Domain    string   `json:"domain"`
	Topic     string   `json:"topic"`
	AttemptID string   `json:"attempt_id"`
	Score     int      `json:"score"`
	Total     int      `json:"total"`
	Band      string   `json:"band"`
	Mode      string   `json:"mode"`
	Heading   string   `json:"-"`
	Feedback  []string `json:"feedback"`
}

// ErrorView describes a failed request.
type ErrorView struct {
	Status  int
	Title   string
	Message string
}

// OptionLabel returns the letter shown before the option at index.
func OptionLabel(index int) string {
	if index >= 0 && index < 26 {
		return string(rune('A' + index))
	}
	return fmt.Sprintf("%d", index+1)
}

// OptionValue joins a label and option text the way answers are submitted.
func OptionValue(label, text string) string {
	return label + ". " + text
}

// NewQuizPage maps a started quiz to page data.
func NewQuizPage(q quiz.Quiz) QuizPage {
	page := QuizPage{
		Domain:    q.Domain,
		Topic:     q.Topic,
		State:     q.State,
		AttemptID: q.AttemptID,
		ExpiresAt: q.ExpiresAt,
		Questions: make([]QuizQuestion, 0, len(q.Questions)),
	}
	for i, record := range q.Questions {
		item := QuizQuestion{Number: i + 1, Text: record.Question}
		for j, text := range record.Options {
			label := OptionLabel(j)
			item.Options = append(item.Options, Option{Label: label, Text: text, Value: OptionValue(label, text)})
		}
		page.Questions = append(page.Questions, item)
	}
	return page
}

// NewResultPage maps a graded outcome to page data.
func NewResultPage(outcome quiz.Outcome) ResultPage {
	heading := "Suggestions"
	if outcome.Mode == config.ModeExplanations {
		heading = "Explanations"
	}
	return ResultPage{
		Domain:    outcome.Domain,
		Topic:     outcome.Topic,
		AttemptID: outcome.AttemptID,
		Score:     outcome.Result.Score,
		Total:     outcome.Result.Total,
		Band:      string(outcome.Band),
		Mode:      outcome.Mode,
		Heading:   heading,
		Feedback:  outcome.Feedback,
	}
}

// FeedbackLines splits a multi-line feedback entry for display.
func FeedbackLines(entry string) []string {
	return strings.Split(entry, "\n")
}

// AnswerField names the radio group for question number.
func AnswerField(number int) string {
	return AnswerFieldPrefix + strconv.Itoa(number)
}

// QuizLink builds the quiz URL for a catalog entry.
func QuizLink(domain, topic string) string {
	return "/quiz?" + url.Values{"domain": {domain}, "topic": {topic}}.Encode()
}
