package driving

import (
	"context"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
)

// ChatService owns the conversation log and the response pipeline.
type ChatService interface {
	// Submit admits user text into the conversation. It appends the user
	// message, invokes the responder and appends exactly one assistant
	// message before returning. Rejections are reported as
	// domain.ErrEmptyMessage or domain.ErrResponsePending and leave the
	// log untouched; an admitted submission never fails.
	Submit(ctx context.Context, text string) error

	// AttachDocument replaces the current document and resets the log to a
	// single assistant message announcing the load.
	AttachDocument(doc *domain.Document)

	// Clear wholesale-replaces the log with an empty one. Unconditional;
	// any confirmation step is a caller concern.
	Clear()

	// Snapshot returns a read-only copy of the conversation state.
	Snapshot() domain.Snapshot

	// Subscribe returns a channel that receives a signal after every
	// conversation mutation. The rendering layer re-reads Snapshot on
	// each signal.
	Subscribe() <-chan struct{}
}
