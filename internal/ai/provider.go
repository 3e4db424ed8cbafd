package ai

import "context"

// GenerateRequest is the provider-independent call shape. Both providers
// accept the same request so either can serve as fallback for the other.
type GenerateRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Provider is one text-generation backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req GenerateRequest) (string, error)
}
