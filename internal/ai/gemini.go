package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-2.0-flash"
)

// Gemini calls the Google generateContent endpoint.
type Gemini struct {
	client *resty.Client
	apiKey string
	model  string
}

// NewGemini returns a Gemini provider. Empty model and base URL take the
// defaults.
func NewGemini(cfg ClientConfig) *Gemini {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	return &Gemini{client: newClient(cfg), apiKey: strings.TrimSpace(cfg.APIKey), model: cfg.Model}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Configured() bool { return usableKey(g.apiKey) }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt and returns the text of the first candidate.
func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if !g.Configured() {
		return "", fmt.Errorf("gemini: %w", ErrNotConfigured)
	}

	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	if opts.System != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: opts.System}}}
	}

	var out geminiResponse
	var apiErr apiError
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", g.apiKey).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/models/" + g.model + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if resp.IsError() {
		return "", statusError("gemini", resp, &apiErr)
	}
	if len(out.Candidates) == 0 {
		return "", errors.New("gemini: response has no candidates")
	}

	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
