// Package ai asks hosted language models for company and market analysis.
//
// Two providers are supported, Gemini and OpenAI, both over plain HTTPS with
// resty. A [Chain] tries the configured providers in order and always
// produces displayable text: provider failures are logged, never returned.
// On top of the chain sit the [Analyzer], which fans six prompts out
// concurrently and scores the result, and the [FactoryService], which
// extracts a structured company profile from a free-text answer.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotConfigured is returned when an operation needs a provider and none
// has a usable API key.
var ErrNotConfigured = errors.New("no ai provider configured")

// Options tunes a single generation.
type Options struct {
	System      string
	Temperature float64
	MaxTokens   int
}

// Provider generates text from a prompt.
type Provider interface {
	Name() string
	Configured() bool
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// ClientConfig holds the connection settings shared by the providers.
type ClientConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// usableKey reports whether key is set and is not a sample value such as
// "your_gemini_api_key_here".
func usableKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !strings.HasPrefix(strings.ToLower(key), "your_")
}

func newClient(cfg ClientConfig) *resty.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}

// apiError is the error body returned by both providers.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func statusError(provider string, resp *resty.Response, body *apiError) error {
	msg := body.Error.Message
	if msg == "" {
		msg = strings.TrimSpace(resp.String())
	}
	return fmt.Errorf("%s: status %d: %s", provider, resp.StatusCode(), msg)
}

// Arrange returns providers ordered by name as listed in order. Providers not
// named keep their relative position after the named ones.
func Arrange(order []string, providers ...Provider) []Provider {
	out := make([]Provider, 0, len(providers))
	taken := make(map[int]bool, len(providers))
	for _, name := range order {
		for i, p := range providers {
			if !taken[i] && strings.EqualFold(strings.TrimSpace(name), p.Name()) {
				out = append(out, p)
				taken[i] = true
			}
		}
	}
	for i, p := range providers {
		if !taken[i] {
			out = append(out, p)
		}
	}
	return out
}
