package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAICompatibleClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "test-model", body["model"])
		messages := body["messages"].([]interface{})
		require.Len(t, messages, 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  generated letter  "}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompatibleClient(OpenAIConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
	})

	text, err := c.Complete(context.Background(), GenerateRequest{
		System:      "system",
		Prompt:      "prompt",
		MaxTokens:   100,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	require.Equal(t, "generated letter", text)
}

func TestOpenAICompatibleClient_NoAPIKey(t *testing.T) {
	c := NewOpenAICompatibleClient(OpenAIConfig{BaseURL: "http://localhost"})

	_, err := c.Complete(context.Background(), GenerateRequest{Prompt: "p"})
	require.Error(t, err)
}

func TestOpenAICompatibleClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewOpenAICompatibleClient(OpenAIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	_, err := c.Complete(context.Background(), GenerateRequest{Prompt: "p"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}

func TestOpenAICompatibleClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompatibleClient(OpenAIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	_, err := c.Complete(context.Background(), GenerateRequest{Prompt: "p"})
	require.Error(t, err)
}

func TestAnthropicClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "system", body["system"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"fallback letter"}]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(AnthropicConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
	})

	text, err := c.Complete(context.Background(), GenerateRequest{
		System:    "system",
		Prompt:    "prompt",
		MaxTokens: 100,
	})
	require.NoError(t, err)
	require.Equal(t, "fallback letter", text)
}

func TestAnthropicClient_NoAPIKey(t *testing.T) {
	c := NewAnthropicClient(AnthropicConfig{BaseURL: "http://localhost"})

	_, err := c.Complete(context.Background(), GenerateRequest{Prompt: "p"})
	require.Error(t, err)
}
