package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var ErrNoProviders = errors.New("no generation providers configured")

// Chain tries each provider in order and returns the first success. One pass,
// no retry loop and no backoff: the second provider IS the retry.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Complete returns the generated text and the name of the provider that
// produced it. Failures of earlier providers are logged, never surfaced to
// the caller.
func (c *Chain) Complete(ctx context.Context, req GenerateRequest) (string, string, error) {
	if len(c.providers) == 0 {
		return "", "", ErrNoProviders
	}

	var lastErr error
	for _, p := range c.providers {
		text, err := p.Complete(ctx, req)
		if err != nil {
			log.Printf("generation via %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		return text, p.Name(), nil
	}
	return "", "", fmt.Errorf("all generation providers failed: %w", lastErr)
}
