// Package tui provides the interactive terminal user interface for Booktalk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat owns the conversation log and response pipeline.
	Chat driving.ChatService

	// Document loads books.
	Document driving.DocumentService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(chat driving.ChatService, document driving.DocumentService) *Ports {
	return &Ports{
		Chat:     chat,
		Document: document,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
