package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"skillcheck/internal/logging"
)

// ErrCallTimeout is the cause attached by WithCallTimeout when a single
// provider call runs out of time.
var ErrCallTimeout = errors.New("llm call timed out")

// WithCallTimeout bounds one provider call. Expiry of this deadline counts
// against the provider; cancellation of the parent context does not.
func WithCallTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeoutCause(ctx, timeout, ErrCallTimeout)
}

// callerGone reports whether ctx ended for a reason other than its own
// call timeout, such as a request deadline or a client disconnect.
func callerGone(ctx context.Context) bool {
	return ctx.Err() != nil && !errors.Is(context.Cause(ctx), ErrCallTimeout)
}

// abandonedError marks a failure caused by the caller going away.
type abandonedError struct {
	err error
}

func (err *abandonedError) Error() string { return err.err.Error() }

func (err *abandonedError) Unwrap() error { return err.err }

// BreakerSettings controls when a provider is considered down.
type BreakerSettings struct {
	Name     string
	Failures int
	Cooldown time.Duration
}

// BreakerGenerator short-circuits calls after consecutive failures.
// Calls rejected while open fail with a *TransportError. Failures that
// happen after the caller's context ended do not count.
type BreakerGenerator struct {
	next    Generator
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerGenerator wraps next with a circuit breaker.
func NewBreakerGenerator(next Generator, settings BreakerSettings, logger *slog.Logger) *BreakerGenerator {
	logger = logging.OrDiscard(logger)
	failures := uint32(1)
	if settings.Failures > 0 {
		failures = uint32(settings.Failures)
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			var abandoned *abandonedError
			return err == nil || errors.As(err, &abandoned)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("llm circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &BreakerGenerator{next: next, breaker: breaker}
}

// Generate forwards to the wrapped generator unless the breaker is open.
func (g *BreakerGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := g.breaker.Execute(func() (interface{}, error) {
		text, err := g.next.Generate(ctx, prompt)
		if err != nil && callerGone(ctx) {
			return text, &abandonedError{err: err}
		}
		return text, err
	})
	if err != nil {
		var abandoned *abandonedError
		if errors.As(err, &abandoned) {
			return "", abandoned.err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &TransportError{Provider: g.breaker.Name(), Err: err}
		}
		return "", err
	}
	text, _ := out.(string)
	return text, nil
}

// State reports the breaker state, for health reporting.
func (g *BreakerGenerator) State() gobreaker.State {
	return g.breaker.State()
}
