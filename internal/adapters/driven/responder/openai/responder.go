// Package openai provides a responder strategy using the OpenAI chat
// completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driven/responder/ratelimit"
	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driven"
)

// Ensure Responder implements the interface.
var _ driven.Responder = (*Responder)(nil)

// Default configuration values.
const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the OpenAI responder.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL. Can be changed for Azure OpenAI or
	// compatible APIs; empty uses the library default.
	BaseURL string

	// Model is the model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Responder answers questions about the loaded book via OpenAI.
type Responder struct {
	client  *goopenai.Client
	model   string
	timeout time.Duration
	limiter *ratelimit.Limiter
}

// New creates a new OpenAI responder.
func New(cfg Config) (*Responder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Responder{
		client:  goopenai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: ratelimit.New(ratelimit.DefaultConfig),
	}, nil
}

// Respond sends the user text with the book content as system context and
// returns the completion text.
func (r *Responder) Respond(ctx context.Context, text string, doc *domain.Document) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: r.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt(doc)},
			{Role: goopenai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			// The client does not expose Retry-After; the limiter falls
			// back to its default backoff window.
			r.limiter.RecordRateLimitError(0)
		}
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the strategy name.
func (r *Responder) Name() string {
	return "openai"
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
