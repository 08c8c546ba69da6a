package domain

import "context"

// CompletionRequest is a single-prompt generation request.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// TokenUsage is the provider-reported token accounting for one completion.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Completion is the first choice returned by a provider.
// ID is the provider-assigned response identifier and may be empty.
type Completion struct {
	ID    string
	Text  string
	Model string
	Usage TokenUsage
}

// CompletionProvider generates text from a prompt.
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// SessionIDStrategy derives the session identifier under which an answer key
// is stored from the provider's completion identifier.
type SessionIDStrategy interface {
	SessionID(completionID string) string
}
