package driven

import "context"

// ChangeFunc is invoked with the declared name of a document whose
// underlying bytes changed.
type ChangeFunc func(name string)

// DocumentSource reads document bytes by declared name.
type DocumentSource interface {
	// Read returns the raw bytes for the named document.
	Read(ctx context.Context, name string) ([]byte, error)

	// Watch invokes fn whenever the named document's bytes change, until
	// the context is cancelled. Implementations that cannot watch return
	// an error immediately.
	Watch(ctx context.Context, name string, fn ChangeFunc) error
}
