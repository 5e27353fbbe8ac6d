package llm

import (
	"context"
	"errors"
)

// Backend failure taxonomy. The session layer turns any of these into a
// degraded reply; none of them abort the pipeline.
var (
	ErrGenerationTimeout     = errors.New("generation timed out")
	ErrGenerationUnavailable = errors.New("generation backend unavailable")
	ErrGenerationMalformed   = errors.New("generation response malformed")
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// LLMProvider defines the contract for any LLM backend.
type LLMProvider interface {
	// Generate sends a single prompt to the model and returns the complete
	// response text. No retries happen at this layer.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
