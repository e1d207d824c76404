// Package llm provides clients for chat-completion providers used to
// compose natural-language answers.
package llm

import "context"

// SamplingParams controls generation for a single request.
type SamplingParams struct {
	MaxTokens   int
	Temperature float64
}

// Client is the provider-independent chat interface.
type Client interface {
	// GenerateResponse sends a single-turn prompt with an optional system
	// message and returns the assistant text.
	GenerateResponse(ctx context.Context, prompt, systemMessage string, params SamplingParams) (string, error)
}
