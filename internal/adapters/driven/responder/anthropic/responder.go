// Package anthropic provides a responder strategy using the Anthropic
// messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driven/responder/ratelimit"
	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driven"
)

// Ensure Responder implements the interface.
var _ driven.Responder = (*Responder)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-3-5-sonnet-latest"
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 1024

	// anthropicVersion is the required API version header.
	anthropicVersion = "2023-06-01"
)

// Config holds configuration for the Anthropic responder.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.anthropic.com).
	BaseURL string

	// Model is the model to use (default: claude-3-5-sonnet-latest).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Responder answers questions about the loaded book via Anthropic.
type Responder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	limiter *ratelimit.Limiter
}

// messagesRequest is the Anthropic /v1/messages request format.
type messagesRequest struct {
	Model     string            `json:"model"`
	Messages  []messagesMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
	System    string            `json:"system,omitempty"`
}

// messagesMessage is the Anthropic message format.
type messagesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the Anthropic /v1/messages response format.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// New creates a new Anthropic responder.
func New(cfg Config) (*Responder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Responder{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		limiter: ratelimit.New(ratelimit.DefaultConfig),
	}, nil
}

// Respond sends the user text with the book content as system context and
// returns the reply text.
func (r *Responder) Respond(ctx context.Context, text string, doc *domain.Document) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := messagesRequest{
		Model:     r.model,
		Messages:  []messagesMessage{{Role: "user", Content: text}},
		MaxTokens: DefaultMaxTokens,
		System:    systemPrompt(doc),
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/v1/messages",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", r.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		r.limiter.RecordRateLimitError(retryAfterSeconds(resp))
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if msgResp.Error != nil {
		return "", fmt.Errorf("anthropic error: %s", msgResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(msgResp.Content) == 0 {
		return "", fmt.Errorf("anthropic: no response content returned")
	}

	// Concatenate all text content blocks
	var result strings.Builder
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}

	return result.String(), nil
}

// Name returns the strategy name.
func (r *Responder) Name() string {
	return "anthropic"
}

// retryAfterSeconds parses the Retry-After header, zero when absent.
func retryAfterSeconds(resp *http.Response) int {
	var secs int
	if v := resp.Header.Get("Retry-After"); v != "" {
		_, _ = fmt.Sscanf(v, "%d", &secs)
	}
	return secs
}

// systemPrompt frames the assistant role, embedding the book when loaded.
func systemPrompt(doc *domain.Document) string {
	if doc == nil {
		return "You are a reading companion. No book is loaded yet; " +
			"ask the user to load a plain-text book before answering questions about one."
	}

	var b strings.Builder
	b.WriteString("You are a reading companion. Answer questions about the book ")
	fmt.Fprintf(&b, "%q using only its text below.\n\n", doc.Name)
	b.WriteString(doc.Content)
	return b.String()
}
