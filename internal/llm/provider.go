package llm

import "context"

// Provider is the abstraction over the external text-generation service.
// The generation client composes a prompt, calls Generate once and parses
// the returned text itself; retry and pacing belong to the caller.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Prompt is the user message for this single-turn request.
	Prompt string

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero means provider default.
	Temperature float64
}

// Response holds the model's raw text output.
type Response struct {
	Text  string
	Model string
	Usage Usage
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
