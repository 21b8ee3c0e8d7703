package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "google/gemini-2.0-flash-001"
)

// OpenRouterClient calls an OpenAI-compatible chat completions endpoint
type OpenRouterClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// OpenRouterOption is a functional option for OpenRouterClient
type OpenRouterOption func(*OpenRouterClient)

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) OpenRouterOption {
	return func(c *OpenRouterClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithModel sets the model name
func WithModel(model string) OpenRouterOption {
	return func(c *OpenRouterClient) {
		c.model = model
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(client *http.Client) OpenRouterOption {
	return func(c *OpenRouterClient) {
		c.httpClient = client
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) OpenRouterOption {
	return func(c *OpenRouterClient) {
		c.logger = logger
	}
}

// NewOpenRouterClient creates a new OpenRouter client
func NewOpenRouterClient(apiKey string, opts ...OpenRouterOption) *OpenRouterClient {
	c := &OpenRouterClient{
		apiKey:     apiKey,
		baseURL:    DefaultOpenRouterBaseURL,
		model:      DefaultOpenRouterModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	MaxTokens      int32           `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason,omitempty"`
	} `json:"choices"`
	Error *struct {
		Code    any    `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one chat completion and returns the first choice's text
func (c *OpenRouterClient) Complete(ctx context.Context, req Request) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxOutputTokens,
	}
	if req.JSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("completion request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(bodyBytes), 500)),
		)
		return "", fmt.Errorf("API error: %d - %s", resp.StatusCode, truncate(string(bodyBytes), 200))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Error != nil && apiResp.Error.Message != "" {
		return "", fmt.Errorf("API error: %s", apiResp.Error.Message)
	}

	if len(apiResp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := apiResp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
