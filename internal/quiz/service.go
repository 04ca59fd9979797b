// Package quiz composes selection, grading and feedback into the two
// operations served to learners: starting a quiz and submitting it.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillcheck/internal/feedback"
	"skillcheck/internal/grading"
	"skillcheck/internal/logging"
	"skillcheck/internal/question"
)

// ErrStateRequired indicates a submission without state while sampling is on.
var ErrStateRequired = errors.New("quiz state is required when sampling is enabled")

// Quiz is the question set shown to a learner.
type Quiz struct {
	Domain    string
	Topic     string
	Questions []question.Record
	State     string
	AttemptID string
	ExpiresAt time.Time
}

// Submission carries the answers for one quiz attempt.
type Submission struct {
	Domain  string
	Topic   string
	State   string
	Answers grading.Answers
}

// Outcome is a graded submission with its feedback.
type Outcome struct {
	Domain    string
	Topic     string
	AttemptID string
	Result    grading.Result
	Band      grading.Band
	Mode      string
	Feedback  []string
}

// Service starts and grades quizzes.
type Service struct {
	store      *question.Store
	signer     *Signer
	strategy   feedback.Strategy
	sampleSize int
	logger     *slog.Logger
}

// NewService wires the quiz service.
func NewService(store *question.Store, signer *Signer, strategy feedback.Strategy, sampleSize int, logger *slog.Logger) *Service {
	if strategy == nil {
		strategy = feedback.Suggestions{}
	}
	return &Service{
		store:      store,
		signer:     signer,
		strategy:   strategy,
		sampleSize: sampleSize,
		logger:     logging.OrDiscard(logger),
	}
}

// Catalog lists the available domains and topics.
func (s *Service) Catalog() []question.CatalogEntry {
	return question.Catalog(s.store.Records())
}

// QuestionCount reports how many records are loaded.
func (s *Service) QuestionCount() int {
	return len(s.store.Records())
}

// Mode reports the configured feedback mode.
func (s *Service) Mode() string {
	return s.strategy.Mode()
}

// Start selects the questions for (domain, topic) and signs the selection.
func (s *Service) Start(domain, topic string) (Quiz, error) {
	domain = strings.TrimSpace(domain)
	topic = strings.TrimSpace(topic)
	selected, err := question.Pick(s.store.Records(), domain, topic, s.sampleSize)
	if err != nil {
		return Quiz{}, err
	}
	token, claims, err := s.signer.Sign(domain, topic, question.IDs(selected))
	if err != nil {
		return Quiz{}, err
	}
	s.logger.Debug("quiz started", "attempt", claims.AttemptID(), "domain", domain, "topic", topic, "questions", len(selected))
	return Quiz{
		Domain:    domain,
		Topic:     topic,
		Questions: selected,
		State:     token,
		AttemptID: claims.AttemptID(),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Submit grades the questions pinned by the submission state. Without a
// state token the selection is recomputed, which is only allowed when
// sampling is disabled.
func (s *Service) Submit(ctx context.Context, submission Submission) (Outcome, error) {
	questions, outcome, err := s.resolve(submission)
	if err != nil {
		return Outcome{}, err
	}

	result := grading.Grade(questions, submission.Answers)
	outcome.Result = result
	outcome.Band = grading.Classify(result.Score, result.Total)
	outcome.Mode = s.strategy.Mode()
	outcome.Feedback = s.strategy.Feedback(ctx, result)

	s.logger.Info("quiz graded",
		"attempt", outcome.AttemptID,
		"domain", outcome.Domain,
		"topic", outcome.Topic,
		"score", result.Score,
		"total", result.Total,
		"mode", outcome.Mode,
	)
	return outcome, nil
}

func (s *Service) resolve(submission Submission) ([]question.Record, Outcome, error) {
	domain := strings.TrimSpace(submission.Domain)
	topic := strings.TrimSpace(submission.Topic)

	if strings.TrimSpace(submission.State) == "" {
		if s.sampleSize > 0 {
			return nil, Outcome{}, ErrStateRequired
		}
		outcome := Outcome{Domain: domain, Topic: topic, AttemptID: uuid.NewString()}
		return question.Select(s.store.Records(), domain, topic), outcome, nil
	}

	claims, err := s.signer.Verify(submission.State)
	if err != nil {
		return nil, Outcome{}, err
	}
	if (domain != "" && domain != claims.Domain) || (topic != "" && topic != claims.Topic) {
		return nil, Outcome{}, fmt.Errorf("%w: selection does not match state", ErrInvalidState)
	}
	questions, err := s.store.Lookup(claims.IDs)
	if err != nil {
		return nil, Outcome{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return questions, Outcome{Domain: claims.Domain, Topic: claims.Topic, AttemptID: claims.AttemptID()}, nil
}
