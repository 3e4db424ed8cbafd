package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type AnthropicConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Version string
}

// AnthropicClient calls the Anthropic messages API with the same request
// shape as the OpenAI-compatible client so the two are interchangeable in a
// fallback chain.
type AnthropicClient struct {
	cfg        AnthropicConfig
	httpClient *http.Client
}

func NewAnthropicClient(cfg AnthropicConfig) *AnthropicClient {
	if cfg.Version == "" {
		cfg.Version = "2023-06-01"
	}
	return &AnthropicClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *AnthropicClient) Name() string { return "anthropic" }

func (c *AnthropicClient) Complete(ctx context.Context, genReq GenerateRequest) (string, error) {
	if c.cfg.APIKey == "" {
		return "", errors.New("anthropic api key not configured")
	}

	reqBody := map[string]interface{}{
		"model":       c.cfg.Model,
		"max_tokens":  genReq.MaxTokens,
		"temperature": genReq.Temperature,
		"system":      genReq.System,
		"messages": []map[string]string{
			{"role": "user", "content": genReq.Prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal anthropic request failed: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("build anthropic request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", c.cfg.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read anthropic response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("anthropic response status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse anthropic json failed: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", errors.New("empty anthropic content")
	}
	return strings.TrimSpace(parsed.Content[0].Text), nil
}
