// Package llm provides the text-completion client used for plan generation
// and result analysis. The remote endpoint speaks the chat completions
// protocol, but responses are not trusted to be well formed: the client
// extracts content from the standard choices shape when possible and falls
// back to looser top-level fields, finally returning the raw body verbatim.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. "http://localhost:11434/v1".
	BaseURL string
	// Model is the model identifier sent with every request.
	Model string
	// APIKey, when non-empty, is sent as a bearer token.
	APIKey string
	// Timeout bounds each request. Zero means no timeout; a hung endpoint
	// then blocks the session until the request returns.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client sends chat completion requests to a remote endpoint.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a completion client.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    opts.BaseURL,
		model:      opts.Model,
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`

	// Looser shapes served by some local inference servers.
	Text          string `json:"text"`
	Response      string `json:"response"`
	GeneratedText string `json:"generated_text"`
}

// Complete sends a single user prompt and returns the response content.
// It fails on transport errors, non-2xx statuses, and empty content; callers
// are expected to recover with their own fallbacks.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(chatCompletionRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	content := extractContent(respBody)
	if content == "" {
		return "", fmt.Errorf("empty response from completion endpoint")
	}

	c.logger.Debug("completion received", zap.Int("bytes", len(content)))
	return content, nil
}

// extractContent pulls the message content out of a response body.
// Preferred shape is choices[0].message.content; top-level text, response
// and generated_text fields are accepted as fallbacks. When nothing matches
// the raw body is returned verbatim so that downstream parsing can still
// make a best effort.
func extractContent(body []byte) string {
	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(body)
	}

	if len(parsed.Choices) > 0 && parsed.Choices[0].Message.Content != "" {
		return parsed.Choices[0].Message.Content
	}
	if parsed.Text != "" {
		return parsed.Text
	}
	if parsed.Response != "" {
		return parsed.Response
	}
	if parsed.GeneratedText != "" {
		return parsed.GeneratedText
	}

	return string(body)
}
