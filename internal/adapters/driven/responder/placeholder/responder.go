// Package placeholder provides the default responder strategy.
// It simulates completion-API latency and returns fixed template replies;
// a real backend swaps in through the same driven.Responder seam.
package placeholder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driven"
)

// Ensure Responder implements the interface.
var _ driven.Responder = (*Responder)(nil)

// Default simulated latency bounds. The actual delay is uniformly
// distributed in [MinDelay, MaxDelay).
const (
	DefaultMinDelay = 1000 * time.Millisecond
	DefaultMaxDelay = 2000 * time.Millisecond
)

// Reply templates, selected on whether a book is loaded.
const (
	noDocumentFormat = `You said: "%s". Please upload a book first to have meaningful conversations about it!`
	documentFormat   = `I understand you're asking about "%s". Once we connect to Claude API, I'll analyze the book content to give you a detailed answer! 📖`
)

// Config holds configuration for the placeholder responder.
type Config struct {
	// MinDelay is the lower latency bound (default: 1s).
	MinDelay time.Duration

	// MaxDelay is the exclusive upper latency bound (default: 2s).
	MaxDelay time.Duration
}

// Responder simulates a completion API with artificial latency.
type Responder struct {
	minDelay time.Duration
	maxDelay time.Duration
}

// New creates a placeholder responder with default latency.
func New() *Responder {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a placeholder responder with custom latency bounds.
func NewWithConfig(cfg Config) *Responder {
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = DefaultMinDelay
	}
	if cfg.MaxDelay <= cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay + (DefaultMaxDelay - DefaultMinDelay)
	}

	return &Responder{
		minDelay: cfg.MinDelay,
		maxDelay: cfg.MaxDelay,
	}
}

// Respond waits out the simulated latency, then returns the template reply
// for the submitted text. Context cancellation aborts the wait and returns
// the context error.
func (r *Responder) Respond(ctx context.Context, text string, doc *domain.Document) (string, error) {
	delay := r.minDelay + time.Duration(rand.Int63n(int64(r.maxDelay-r.minDelay)))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	if doc == nil {
		return fmt.Sprintf(noDocumentFormat, text), nil
	}
	return fmt.Sprintf(documentFormat, text), nil
}

// Name returns the strategy name.
func (r *Responder) Name() string {
	return "placeholder"
}
