package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(_ context.Context, _ GenerateRequest) (string, error) {
	p.calls++
	return p.text, p.err
}

func TestChain_FirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "openai", text: "letter from first"}
	second := &stubProvider{name: "anthropic", text: "letter from second"}
	chain := NewChain(first, second)

	text, provider, err := chain.Complete(context.Background(), GenerateRequest{Prompt: "p"})
	require.NoError(t, err)
	require.Equal(t, "letter from first", text)
	require.Equal(t, "openai", provider)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 0, second.calls)
}

func TestChain_FallsBackOnFailure(t *testing.T) {
	first := &stubProvider{name: "openai", err: errors.New("rate limited")}
	second := &stubProvider{name: "anthropic", text: "letter from fallback"}
	chain := NewChain(first, second)

	text, provider, err := chain.Complete(context.Background(), GenerateRequest{Prompt: "p"})
	require.NoError(t, err)
	require.Equal(t, "letter from fallback", text)
	require.Equal(t, "anthropic", provider)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
}

func TestChain_AllFail(t *testing.T) {
	firstErr := errors.New("rate limited")
	lastErr := errors.New("overloaded")
	chain := NewChain(
		&stubProvider{name: "openai", err: firstErr},
		&stubProvider{name: "anthropic", err: lastErr},
	)

	_, _, err := chain.Complete(context.Background(), GenerateRequest{Prompt: "p"})
	require.Error(t, err)
	require.ErrorIs(t, err, lastErr)
	require.NotErrorIs(t, err, firstErr)
}

func TestChain_NoProviders(t *testing.T) {
	chain := NewChain()

	_, _, err := chain.Complete(context.Background(), GenerateRequest{Prompt: "p"})
	require.ErrorIs(t, err, ErrNoProviders)
}
