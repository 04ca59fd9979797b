// Package llm talks to the text-generation services that explain missed
// quiz questions.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Generator produces text for a prompt. Failures are reported as
// *TransportError or *HTTPError.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options are sampling parameters forwarded to the provider.
type Options struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// ErrNoProvider is returned when no generator is configured.
var ErrNoProvider = errors.New("no llm provider configured")

// TransportError reports a failure to reach the provider or read its reply.
type TransportError struct {
	Provider string
	Err      error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("%s transport error: %v", err.Provider, err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}

// HTTPError reports a non-2xx reply from the provider.
type HTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (err *HTTPError) Error() string {
	if err.Body == "" {
		return fmt.Sprintf("%s http error: status %d", err.Provider, err.StatusCode)
	}
	return fmt.Sprintf("%s http error: status %d: %s", err.Provider, err.StatusCode, err.Body)
}

const maxErrorBody = 512

func truncateBody(body []byte) string {
	text := string(body)
	if len(text) > maxErrorBody {
		return text[:maxErrorBody]
	}
	return text
}
