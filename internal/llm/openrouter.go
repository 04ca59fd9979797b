package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultOpenRouterBaseURL is the default OpenRouter API base URL.
const DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterGenerator calls an OpenAI-style chat completions endpoint.
type OpenRouterGenerator struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
	Model   string
	Options Options
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenRouterGenerator constructs an OpenRouter generator with explicit settings.
func NewOpenRouterGenerator(model, apiKey, baseURL string, opts Options, client HTTPDoer) (*OpenRouterGenerator, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultOpenRouterBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenRouterGenerator{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		Model:   model,
		Options: opts,
	}, nil
}

// Generate sends prompt as a single user message and returns the first choice.
func (g *OpenRouterGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       g.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   g.Options.MaxTokens,
		Temperature: g.Options.Temperature,
		TopP:        g.Options.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := g.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", &TransportError{Provider: "openrouter", Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Provider: "openrouter", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{Provider: "openrouter", StatusCode: resp.StatusCode, Body: strings.TrimSpace(truncateBody(body))}
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &TransportError{Provider: "openrouter", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}
	return decoded.Choices[0].Message.Content, nil
}
