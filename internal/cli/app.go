package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"skillcheck/internal/config"
	"skillcheck/internal/feedback"
	"skillcheck/internal/llm"
	"skillcheck/internal/logging"
	"skillcheck/internal/question"
	"skillcheck/internal/quiz"
)

// app holds the wired components shared by serve and play.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *question.Store
	service *quiz.Service
}

// newGenerator is a test seam for building the explanation provider.
var newGenerator = func(cfg config.LLMConfig, logger *slog.Logger) (llm.Generator, error) {
	return llm.FromConfig(cfg, nil, logger)
}

// buildApp wires the question store, feedback strategy and quiz service.
// Logs go to logOut.
func buildApp(cfg config.Config, logOut io.Writer) (*app, error) {
	logger, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	delimiter, err := cfg.Questions.DelimiterRune()
	if err != nil {
		return nil, err
	}
	store := question.NewStore(cfg.Questions.File, delimiter, logger)

	var generator llm.Generator
	if cfg.Feedback.Mode == config.ModeExplanations {
		generator, err = newGenerator(cfg.LLM, logger)
		if err != nil && !errors.Is(err, llm.ErrNoProvider) {
			return nil, fmt.Errorf("llm: %w", err)
		}
	}
	strategy, err := feedback.FromConfig(cfg, generator, logger)
	if err != nil {
		return nil, err
	}

	signer, err := quiz.NewSigner(cfg.State.Secret, time.Duration(cfg.State.TTLMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	if cfg.State.Secret == "" {
		logger.Warn("state secret not set; quiz links will not survive a restart", "env", config.EnvStateSecret)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		service: quiz.NewService(store, signer, strategy, cfg.Questions.SampleSize, logger),
	}, nil
}
