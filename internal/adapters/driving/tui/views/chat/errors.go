package chat

import "errors"

// Error definitions for the chat view.
var (
	// ErrNoChatService indicates that no chat service was provided.
	ErrNoChatService = errors.New("chat service is required")

	// ErrNoDocumentService indicates that no document service was provided.
	ErrNoDocumentService = errors.New("document service is required")
)
