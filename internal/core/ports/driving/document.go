package driving

import (
	"context"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
)

// DocumentService loads books for the conversation.
type DocumentService interface {
	// Load validates the file name, reads the bytes and decodes them as
	// text. Returns domain.ErrUnsupportedType for a name that does not end
	// in the accepted extension and domain.ErrReadFailure when the bytes
	// cannot be read. No state is mutated on failure.
	Load(ctx context.Context, name string) (*domain.Document, error)
}
