package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/booktalk-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService loads books from a document source.
type DocumentService struct {
	source driven.DocumentSource
}

// NewDocumentService creates a new document service.
func NewDocumentService(source driven.DocumentSource) *DocumentService {
	return &DocumentService{source: source}
}

// Load validates the declared name, reads the bytes and decodes them as text.
//
// The extension check is a case-sensitive suffix match on the declared name.
// Content is kept verbatim: no trimming, size limit or encoding detection.
func (s *DocumentService) Load(ctx context.Context, name string) (*domain.Document, error) {
	if s.source == nil {
		return nil, domain.ErrInvalidInput
	}

	if !strings.HasSuffix(name, domain.AcceptedExtension) {
		return nil, fmt.Errorf("%w: only %s files are accepted",
			domain.ErrUnsupportedType, domain.AcceptedExtension)
	}

	data, err := s.source.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReadFailure, err)
	}

	logger.Debug("loaded document %q (%d bytes)", name, len(data))

	return &domain.Document{
		Name:    name,
		Content: string(data),
	}, nil
}
