// internal/generator/client.go
// Minimal client for OpenAI-compatible chat completion endpoints.

package generator

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

	"github.com/hashicorp/go-cleanhttp"
)

var (
	ErrNotConfigured = errors.New("llm endpoint is not configured")
	ErrEmptyReply    = errors.New("llm returned no choices")
)

// maxReplyBytes caps how much of an upstream body we read
const maxReplyBytes = 4 << 20

// Config for the chat completion endpoint
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Message is one chat turn. Role is system, user or assistant.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tune a single completion
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Completer is anything that can answer a chat conversation
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient returns nil when no base URL is configured
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		return nil
	}

	httpClient := cleanhttp.DefaultPooledClient()
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

// Complete sends the conversation and returns the first choice's content
func (c *Client) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}

	request := chatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	}
	if opts.Temperature > 0 {
		request.Temperature = &opts.Temperature
	}
	if opts.MaxTokens > 0 {
		request.MaxTokens = &opts.MaxTokens
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" && c.apiKey != "none" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordRequest("error", time.Since(start))
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		recordRequest("error", time.Since(start))
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		recordRequest("error", time.Since(start))
		return "", fmt.Errorf("llm api error (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		recordRequest("error", time.Since(start))
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Choices) == 0 {
		recordRequest("empty", time.Since(start))
		return "", ErrEmptyReply
	}

	recordRequest("success", time.Since(start))
	return response.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
