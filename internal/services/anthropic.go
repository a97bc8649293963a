package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAnthropicURL   = "https://api.anthropic.com"
	defaultAnthropicModel = "claude-3-haiku-20240307"
)

// AnthropicClient calls the Anthropic messages API (non-streaming). It
// performs no retries: a failed call is reported to the caller as-is.
type AnthropicClient struct {
	client *http.Client
	apiKey string
	apiURL string
	model  string
}

func NewAnthropicClient(apiKey, apiURL string) *AnthropicClient {
	apiURL = strings.TrimRight(apiURL, "/")
	if apiURL == "" {
		apiURL = defaultAnthropicURL
	}
	return &AnthropicClient{
		client: &http.Client{Timeout: 60 * time.Second},
		apiKey: apiKey,
		apiURL: apiURL,
		model:  defaultAnthropicModel,
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *anthropicError    `json:"error"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Complete sends prompt as a single user message and returns the first text
// content block of the response.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("anthropic: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Anthropic-Version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &APIError{Provider: "anthropic", Kind: "network_error", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Provider: "anthropic", Kind: "network_error", Message: err.Error()}
	}

	var decoded anthropicResponse
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if jsonErr := json.Unmarshal(body, &decoded); jsonErr == nil && decoded.Error != nil {
			return "", &APIError{Provider: "anthropic", Kind: decoded.Error.Type, Message: decoded.Error.Message}
		}
		return "", &APIError{
			Provider: "anthropic",
			Kind:     "api_error",
			Message:  fmt.Sprintf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &APIError{Provider: "anthropic", Kind: "api_error", Message: "decode response: " + err.Error()}
	}

	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &APIError{Provider: "anthropic", Kind: "api_error", Message: "response contained no text content"}
}
