package llm

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

// ErrNotConfigured is returned when no provider endpoint or credentials are set.
var ErrNotConfigured = errors.New("llm provider not configured")

// ProviderError is returned when a provider call fails so the caller can
// distinguish "provider answered badly" from "provider was unreachable".
type ProviderError struct {
	Op      string
	Status  int
	Reason  string
	Wrapped error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s failed: %s", e.Op, e.Reason)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s failed: status %d: %s", e.Op, e.Status, e.Reason)
	}
	if e.Wrapped != nil {
		return msg + ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Wrapped
}

// retryable reports whether another attempt may succeed.
func (e *ProviderError) retryable() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Options configure a Client.
type Options struct {
	URL      string // e.g. "https://api.openai.com" or "http://localhost:1234"
	APIKey   string
	Model    string
	STTModel string
	TTSModel string
	Voice    string
	Timeout  time.Duration
}

// Client talks to an OpenAI-compatible endpoint (OpenAI, Ollama, LM Studio,
// vLLM) for chat completions, transcription and speech synthesis.
type Client struct {
	opts   Options
	client *http.Client
}

// New creates a client. A zero Timeout means 120s.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	opts.URL = strings.TrimRight(opts.URL, "/")
	return &Client{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// Configured reports whether calls can be attempted. The hosted OpenAI
// endpoint needs a key; self-hosted endpoints usually do not.
func (c *Client) Configured() bool {
	if c == nil || c.opts.URL == "" || c.opts.Model == "" {
		return false
	}
	return c.opts.APIKey != "" || !strings.Contains(c.opts.URL, "api.openai.com")
}

const maxAttempts = 2

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a single completion request. System is sent as the first
// message when set.
type ChatRequest struct {
	System         string
	Messages       []Message
	ResponseFormat map[string]any
	Temperature    float64
}

type chatBody struct {
	Model          string         `json:"model"`
	Messages       []Message      `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

// Complete sends a chat completion and returns the decoded response body
// without interpreting it; callers run their own extraction over it. A body
// that is not JSON is returned as a string.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (any, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	messages := make([]Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, Message{Role: "system", Content: req.System})
	}
	messages = append(messages, req.Messages...)

	payload, err := json.Marshal(chatBody{
		Model:          c.opts.Model,
		Messages:       messages,
		Temperature:    req.Temperature,
		ResponseFormat: req.ResponseFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	body, err := c.doWithRetry(ctx, "chat completion", "/v1/chat/completions", "application/json", payload)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body), nil
	}
	return decoded, nil
}

// doWithRetry posts payload and retries once on transport errors, 429 and 5xx.
func (c *Client) doWithRetry(ctx context.Context, op, path, contentType string, payload []byte) ([]byte, error) {
	var lastErr *ProviderError
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := c.post(ctx, op, path, contentType, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !err.retryable() || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) post(ctx context.Context, op, path, contentType string, payload []byte) ([]byte, *ProviderError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &ProviderError{Op: op, Reason: "failed to create request", Wrapped: err}
	}
	req.Header.Set("Content-Type", contentType)
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Op: op, Reason: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Op: op, Status: resp.StatusCode, Reason: "failed to read response", Wrapped: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Op: op, Status: resp.StatusCode, Reason: snippet(body)}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &ProviderError{Op: op, Status: resp.StatusCode, Reason: "empty response"}
	}
	return body, nil
}

// snippet keeps error bodies short enough for logs.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if r := []rune(s); len(r) > 200 {
		return string(r[:200]) + "…"
	}
	if s == "" {
		return "no body"
	}
	return s
}
