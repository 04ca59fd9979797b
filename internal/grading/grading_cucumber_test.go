//go:build cucumber

package grading

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"skillcheck/internal/question"
)

// TestGradingScenarios runs the grading feature scenarios.
func TestGradingScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "grading",
		ScenarioInitializer: InitializeGradingScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("testdata", "grading.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeGradingScenario wires steps for grading scenarios.
func InitializeGradingScenario(ctx *godog.ScenarioContext) {
	state := &gradingScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a quiz with the question "([^"]*)" answered by "([^"]*)"$`, state.givenQuestion)
	ctx.Step(`^the learner submits "([^"]*)" for question (\d+)$`, state.whenSubmits)
	ctx.Step(`^the learner submits nothing$`, state.whenSubmitsNothing)
	ctx.Step(`^the score is (\d+) out of (\d+)$`, state.thenScore)
	ctx.Step(`^no questions are missed$`, state.thenNoneMissed)
	ctx.Step(`^question "([^"]*)" is missed with answer "([^"]*)"$`, state.thenMissed)
	ctx.Step(`^the suggestion is "([^"]*)"$`, state.thenSuggestion)
}

type gradingScenarioState struct {
	questions []question.Record
	answers   Answers
	graded    bool
	result    Result
}

// reset clears scenario state.
func (s *gradingScenarioState) reset() {
	s.questions = nil
	s.answers = Answers{}
	s.graded = false
	s.result = Result{}
}

func (s *gradingScenarioState) givenQuestion(text, correct string) error {
	s.questions = append(s.questions, question.Record{
		ID:            len(s.questions),
		Question:      text,
		CorrectAnswer: correct,
	})
	return nil
}

func (s *gradingScenarioState) whenSubmits(answer string, position int) error {
	s.answers[position] = answer
	return nil
}

func (s *gradingScenarioState) whenSubmitsNothing() error {
	s.answers = Answers{}
	return nil
}

func (s *gradingScenarioState) grade() Result {
	if !s.graded {
		s.result = Grade(s.questions, s.answers)
		s.graded = true
	}
	return s.result
}

func (s *gradingScenarioState) thenScore(score, total int) error {
	result := s.grade()
	if result.Score != score || result.Total != total {
		return fmt.Errorf("expected %d/%d, got %d/%d", score, total, result.Score, result.Total)
	}
	return nil
}

func (s *gradingScenarioState) thenNoneMissed() error {
	if missed := s.grade().Missed; len(missed) != 0 {
		return fmt.Errorf("expected no missed questions, got %+v", missed)
	}
	return nil
}

func (s *gradingScenarioState) thenMissed(text, answer string) error {
	for _, missed := range s.grade().Missed {
		if missed.Question == text {
			if missed.UserAnswer != answer {
				return fmt.Errorf("expected answer %q, got %q", answer, missed.UserAnswer)
			}
			return nil
		}
	}
	return fmt.Errorf("question %q was not missed", text)
}

func (s *gradingScenarioState) thenSuggestion(expected string) error {
	result := s.grade()
	if got := Suggest(result.Score, result.Total); got != expected {
		return fmt.Errorf("expected suggestion %q, got %q", expected, got)
	}
	return nil
}
