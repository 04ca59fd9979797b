package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator uses the go-openai chat completion client.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	options Options
}

// NewOpenAIGenerator constructs a generator backed by go-openai.
func NewOpenAIGenerator(model, apiKey, baseURL string, opts Options, client HTTPDoer) (*OpenAIGenerator, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if client != nil {
		cfg.HTTPClient = client
	}
	return &OpenAIGenerator{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		options: opts,
	}, nil
}

// Generate requests a single chat completion for prompt.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   g.options.MaxTokens,
		Temperature: float32(g.options.Temperature),
		TopP:        float32(g.options.TopP),
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &HTTPError{Provider: "openai", StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		body := ""
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &HTTPError{Provider: "openai", StatusCode: reqErr.HTTPStatusCode, Body: body}
	}
	return &TransportError{Provider: "openai", Err: err}
}
