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

// DefaultHuggingFaceBaseURL is the default Hugging Face inference API base URL.
const DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"

// HuggingFaceGenerator calls the Hugging Face text-generation inference API.
type HuggingFaceGenerator struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
	Model   string
	Options Options
}

type inferenceParameters struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p,omitempty"`
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceOutput struct {
	GeneratedText string `json:"generated_text"`
}

// NewHuggingFaceGenerator constructs a Hugging Face generator.
func NewHuggingFaceGenerator(model, apiKey, baseURL string, opts Options, client HTTPDoer) (*HuggingFaceGenerator, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultHuggingFaceBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HuggingFaceGenerator{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		Model:   model,
		Options: opts,
	}, nil
}

// Generate posts prompt to the model endpoint and returns the first generated text.
func (g *HuggingFaceGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			MaxNewTokens: g.Options.MaxTokens,
			Temperature:  g.Options.Temperature,
			TopP:         g.Options.TopP,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := g.BaseURL + "/models/" + g.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", &TransportError{Provider: "huggingface", Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Provider: "huggingface", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{Provider: "huggingface", StatusCode: resp.StatusCode, Body: strings.TrimSpace(truncateBody(body))}
	}

	var outputs []inferenceOutput
	if err := json.Unmarshal(body, &outputs); err != nil {
		return "", &TransportError{Provider: "huggingface", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(outputs) == 0 {
		return "", nil
	}
	return outputs[0].GeneratedText, nil
}
