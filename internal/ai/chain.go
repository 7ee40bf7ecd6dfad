package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tradescout/tradescout/internal/logging"
)

// Texts shown in place of an analysis.
const (
	EmptyResponse = "Analysis could not be produced"
	Unavailable   = "AI services are currently unavailable. Please check your API keys."
)

// Asker is what the analysis services need from a Chain.
type Asker interface {
	Configured() bool
	Ask(ctx context.Context, prompt string, opts Options) string
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Chain tries providers in order until one answers.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

var _ Asker = (*Chain)(nil)

// NewChain returns a chain over providers, tried in the given order.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logging.OrDefault(logger)}
}

// Configured reports whether at least one provider has a usable key.
func (c *Chain) Configured() bool {
	for _, p := range c.providers {
		if p.Configured() {
			return true
		}
	}
	return false
}

// Providers returns the names of the configured providers, in order.
func (c *Chain) Providers() []string {
	var names []string
	for _, p := range c.providers {
		if p.Configured() {
			names = append(names, p.Name())
		}
	}
	return names
}

// Generate returns the first successful answer. Blank answers become
// EmptyResponse. The error wraps the last provider failure, or is
// ErrNotConfigured.
func (c *Chain) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	log := logging.Scoped(ctx, c.logger)

	var lastErr error
	for _, p := range c.providers {
		if !p.Configured() {
			continue
		}
		text, err := p.Generate(ctx, prompt, opts)
		if err != nil {
			log.Warn("ai provider failed", "provider", p.Name(), "error", err)
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if strings.TrimSpace(text) == "" {
			return EmptyResponse, nil
		}
		return text, nil
	}

	if lastErr == nil {
		return "", ErrNotConfigured
	}
	return "", fmt.Errorf("ai unavailable: %w", lastErr)
}

// Ask is Generate for display: any failure becomes Unavailable.
func (c *Chain) Ask(ctx context.Context, prompt string, opts Options) string {
	text, err := c.Generate(ctx, prompt, opts)
	if err != nil {
		return Unavailable
	}
	return text
}
