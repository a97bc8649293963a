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
	defaultOpenAIURL   = "https://api.openai.com/v1"
	imageModel         = "dall-e-3"
	imageSize          = "1024x1024"
	testResponsesModel = "gpt-4.1-mini"
)

// OpenAIClient calls the OpenAI API for image generation and for the
// /test-openai smoke check. No retries.
type OpenAIClient struct {
	client *http.Client
	apiKey string
	apiURL string
}

func NewOpenAIClient(apiKey, apiURL string) *OpenAIClient {
	apiURL = strings.TrimRight(apiURL, "/")
	if apiURL == "" {
		apiURL = defaultOpenAIURL
	}
	return &OpenAIClient{
		client: &http.Client{Timeout: 60 * time.Second},
		apiKey: apiKey,
		apiURL: apiURL,
	}
}

type openAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type openAIErrorBody struct {
	Error *openAIError `json:"error"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImage requests one dall-e-3 rendering of prompt and returns the
// hosted URL of the result.
func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	var decoded imageResponse
	if err := c.post(ctx, "/images/generations", imageRequest{
		Model:  imageModel,
		Prompt: prompt,
		Size:   imageSize,
	}, &decoded); err != nil {
		return "", err
	}
	if len(decoded.Data) == 0 || decoded.Data[0].URL == "" {
		return "", &APIError{Provider: "openai", Kind: "api_error", Message: "image response contained no URL"}
	}
	return decoded.Data[0].URL, nil
}

type responsesRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// Respond sends input through the responses API and returns the combined
// output text. Used by GET /test-openai only.
func (c *OpenAIClient) Respond(ctx context.Context, input string) (string, error) {
	var decoded responsesResponse
	if err := c.post(ctx, "/responses", responsesRequest{
		Model: testResponsesModel,
		Input: input,
	}, &decoded); err != nil {
		return "", err
	}

	var out strings.Builder
	for _, item := range decoded.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "output_text" {
				out.WriteString(content.Text)
			}
		}
	}
	if out.Len() == 0 {
		return "", &APIError{Provider: "openai", Kind: "api_error", Message: "response contained no output text"}
	}
	return out.String(), nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return &APIError{Provider: "openai", Kind: "network_error", Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Provider: "openai", Kind: "network_error", Message: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errBody openAIErrorBody
		if jsonErr := json.Unmarshal(raw, &errBody); jsonErr == nil && errBody.Error != nil {
			return &APIError{Provider: "openai", Kind: errBody.Error.Type, Message: errBody.Error.Message}
		}
		return &APIError{
			Provider: "openai",
			Kind:     "api_error",
			Message:  fmt.Sprintf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(raw))),
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Provider: "openai", Kind: "api_error", Message: "decode response: " + err.Error()}
	}
	return nil
}
