// Package play runs a quiz in the terminal, either as a Bubble Tea UI or as
// plain line prompts.
package play

import (
	"context"
	"errors"

	"skillcheck/internal/grading"
	"skillcheck/internal/quiz"
	"skillcheck/internal/web/views"
)

// ErrAborted is returned when the learner quits before the quiz is graded.
var ErrAborted = errors.New("quiz aborted")

// SubmitFunc grades the collected answers.
type SubmitFunc func(ctx context.Context, answers grading.Answers) (quiz.Outcome, error)

// Phase is the stage of a terminal quiz session.
type Phase int

const (
	// PhaseAnswering walks through the questions.
	PhaseAnswering Phase = iota
	// PhaseGrading waits for the submission to be graded.
	PhaseGrading
	// PhaseDone shows the result.
	PhaseDone
	// PhaseAborted means the learner quit early.
	PhaseAborted
)

// State captures the terminal quiz session.
type State struct {
	Page    views.QuizPage
	Current int
	Cursor  int
	Answers grading.Answers
	Phase   Phase
	Outcome quiz.Outcome
	Err     error
}

// NewState starts a session on the first question. A quiz with no
// questions goes straight to grading.
func NewState(page views.QuizPage) State {
	state := State{Page: page, Answers: grading.Answers{}}
	if len(page.Questions) == 0 {
		state.Phase = PhaseGrading
	}
	return state
}

// CurrentQuestion returns the question being answered.
func (s State) CurrentQuestion() (views.QuizQuestion, bool) {
	if s.Phase != PhaseAnswering || s.Current >= len(s.Page.Questions) {
		return views.QuizQuestion{}, false
	}
	return s.Page.Questions[s.Current], true
}

// MoveCursor moves the option cursor by delta, clamped to the options.
func MoveCursor(state State, delta int) State {
	item, ok := state.CurrentQuestion()
	if !ok || len(item.Options) == 0 {
		return state
	}
	state.Cursor = min(max(state.Cursor+delta, 0), len(item.Options)-1)
	return state
}

// Choose records the option under the cursor and advances.
func Choose(state State) State {
	item, ok := state.CurrentQuestion()
	if !ok {
		return state
	}
	if state.Cursor < len(item.Options) {
		state.Answers = cloneAnswers(state.Answers)
		state.Answers[item.Number] = item.Options[state.Cursor].Value
	}
	return advance(state)
}

// Skip leaves the current question unanswered and advances.
func Skip(state State) State {
	if _, ok := state.CurrentQuestion(); !ok {
		return state
	}
	return advance(state)
}

// Graded records the submission result.
func Graded(state State, outcome quiz.Outcome, err error) State {
	state.Outcome = outcome
	state.Err = err
	state.Phase = PhaseDone
	return state
}

// Abort ends the session without grading.
func Abort(state State) State {
	if state.Phase == PhaseDone {
		return state
	}
	state.Phase = PhaseAborted
	return state
}

func advance(state State) State {
	state.Current++
	state.Cursor = 0
	if state.Current >= len(state.Page.Questions) {
		state.Phase = PhaseGrading
	}
	return state
}

func cloneAnswers(answers grading.Answers) grading.Answers {
	out := make(grading.Answers, len(answers)+1)
	for k, v := range answers {
		out[k] = v
	}
	return out
}
