package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-3.5-turbo"
)

// OpenAI calls the chat completions endpoint.
type OpenAI struct {
	client *resty.Client
	apiKey string
	model  string
}

// NewOpenAI returns an OpenAI provider. Empty model and base URL take the
// defaults.
func NewOpenAI(cfg ClientConfig) *OpenAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	return &OpenAI{client: newClient(cfg), apiKey: strings.TrimSpace(cfg.APIKey), model: cfg.Model}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Configured() bool { return usableKey(o.apiKey) }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends prompt as the user message and returns the first choice.
func (o *OpenAI) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if !o.Configured() {
		return "", fmt.Errorf("openai: %w", ErrNotConfigured)
	}

	req := chatRequest{
		Model:       o.model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	if opts.System != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: opts.System})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: prompt})

	var out chatResponse
	var apiErr apiError
	resp, err := o.client.R().
		SetContext(ctx).
		SetAuthToken(o.apiKey).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if resp.IsError() {
		return "", statusError("openai", resp, &apiErr)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("openai: response has no choices")
	}
	return out.Choices[0].Message.Content, nil
}
