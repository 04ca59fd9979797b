package feedback

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"skillcheck/internal/grading"
)

// BuildPrompt asks for a short explanation of one missed question.
func BuildPrompt(item grading.Missed) string {
	return fmt.Sprintf(
		"Explain this quiz question and the reasoning behind the correct answer. Question: %s, Correct Answer: %s, User's Answer: %s. Explain in about 5 lines.",
		item.Question, item.CorrectAnswer, item.UserAnswer,
	)
}

// FormatBlock renders the four-line explanation block.
func FormatBlock(item grading.Missed, explanation string) string {
	return fmt.Sprintf("Question: %s\nCorrect Answer: %s\nYour Answer: %s\nExplanation: %s",
		item.Question, item.CorrectAnswer, item.UserAnswer, explanation)
}

// Sanitize strips an echoed prompt, trims whitespace, drops blank lines
// and truncates to maxChars runes. maxChars <= 0 disables truncation.
func Sanitize(text, prompt string, maxChars int) string {
	if prompt != "" {
		text = strings.ReplaceAll(text, prompt, "")
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")
	if maxChars > 0 && utf8.RuneCountInString(text) > maxChars {
		text = strings.TrimSpace(string([]rune(text)[:maxChars]))
	}
	return text
}
