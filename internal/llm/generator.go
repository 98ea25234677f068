// Package llm wraps the text-completion backends used to write trip plans.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
)

var (
	ErrMissingAPIKey = errors.New("text-completion API key is not configured")
	ErrEmptyResponse = errors.New("text-completion response contained no text")
)

// Generator turns a prompt into generated text. Implementations return the
// provider's text unmodified.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the generator selected by cfg. Credentials are checked on the
// first Generate call, not here.
func New(cfg *config.GeneratorConfig) (Generator, error) {
	var g Generator
	switch cfg.Provider {
	case config.ProviderGemini, "":
		g = NewGemini(cfg.APIKey, cfg.Model)
	case config.ProviderHTTP:
		g = NewCompletionClient(cfg.BaseURL, cfg.APIKey)
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}

	if cfg.RequestsPerSecond > 0 {
		g = NewRateLimited(g, cfg.RequestsPerSecond)
	}
	return g, nil
}

// Close releases g when it holds a client.
func Close(g Generator) error {
	if c, ok := g.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Echo returns the prompt as the generated text.
var Echo = GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
	return prompt, nil
})
