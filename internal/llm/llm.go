// Package llm wraps the chat-completion API the processing crews use for
// their generation stages.
package llm

import "context"

// Request is one completion exchange: a role prompt plus the stage input.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  *float64 // nil = client default
}

// Usage reports token consumption for a completed request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Client issues completion requests. Implementations must be safe for
// sequential reuse across pipeline stages.
type Client interface {
	Complete(ctx context.Context, req Request) (string, Usage, error)
	Model() string
}

// Config holds client construction settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}
