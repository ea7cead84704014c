package driven

import (
	"context"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
)

// Responder produces an assistant reply from user text and the current
// document (nil when no book is loaded). It is the only suspension point
// in the system: implementations may block on network calls or artificial
// delay. The chat service converts any returned error into a fixed
// user-visible failure message; errors never propagate past the engine.
//
// Implementations may include:
//   - Placeholder (simulated latency, fixed templates)
//   - OpenAI (chat completions)
//   - Anthropic (messages API)
type Responder interface {
	// Respond returns the assistant reply text.
	Respond(ctx context.Context, text string, doc *domain.Document) (string, error)

	// Name returns the strategy name for display and logging.
	Name() string
}
