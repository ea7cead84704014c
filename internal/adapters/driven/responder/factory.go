// Package responder provides factory functions for creating responder
// strategies. The chat service is strategy-agnostic; swapping the provider
// here never touches engine invariants.
package responder

import (
	"fmt"

	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driven/responder/anthropic"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driven/responder/openai"
	"github.com/inkwell-labs/booktalk-cli/internal/adapters/driven/responder/placeholder"
	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driven"
)

// Known provider names.
const (
	ProviderPlaceholder = "placeholder"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
)

// Config selects and configures a responder strategy.
type Config struct {
	// Provider is one of the known provider names. Empty selects the
	// placeholder.
	Provider string

	// APIKey authenticates against the provider (unused by placeholder).
	APIKey string

	// BaseURL overrides the provider endpoint (optional).
	BaseURL string

	// Model selects the provider model (optional).
	Model string
}

// New creates the configured responder strategy.
func New(cfg Config) (driven.Responder, error) {
	switch cfg.Provider {
	case "", ProviderPlaceholder:
		return placeholder.New(), nil

	case ProviderOpenAI:
		r, err := openai.New(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("creating openai responder: %w", err)
		}
		return r, nil

	case ProviderAnthropic:
		r, err := anthropic.New(anthropic.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("creating anthropic responder: %w", err)
		}
		return r, nil

	default:
		return nil, fmt.Errorf("%w: responder provider %q", domain.ErrUnsupportedType, cfg.Provider)
	}
}
