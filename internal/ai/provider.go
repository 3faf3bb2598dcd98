package ai

import "context"

// CompletionRequest is one chat-completion call to the provider
type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Provider is the external LLM the orchestrator talks to. A single
// synchronous call per request; no streaming, no retries.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
