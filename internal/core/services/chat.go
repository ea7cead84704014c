package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/booktalk-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// FailureReply is appended instead of a response when the responder errors.
// Responder failures are swallowed here and never propagate to the caller.
const FailureReply = "Sorry, something went wrong. Please try again."

// loadedReplyFormat announces a successful document load.
const loadedReplyFormat = `Successfully loaded "%s"! Ask me anything about this book.`

// ChatService owns the conversation log and the response pipeline.
//
// A single mutex guards the log, the document reference and the pending
// flag. The responder call is the only suspension point and runs outside
// the lock, so Snapshot and Clear stay responsive mid-response.
type ChatService struct {
	responder driven.Responder

	mu       sync.Mutex
	messages []domain.Message
	doc      *domain.Document
	pending  bool
	subs     []chan struct{}
}

// NewChatService creates a chat service using the given responder strategy.
func NewChatService(responder driven.Responder) *ChatService {
	return &ChatService{responder: responder}
}

// Submit admits user text into the conversation.
//
// Admission control: the trimmed text must be non-empty and no response may
// be in flight. Rejections leave the log untouched. An admitted submission
// appends the user message, invokes the responder and appends exactly one
// assistant message - the reply on success, FailureReply on error or
// cancellation. The pending flag clears in every outcome.
func (s *ChatService) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyMessage
	}
	if s.responder == nil {
		return domain.ErrResponderUnavailable
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return domain.ErrResponsePending
	}
	s.pending = true
	s.messages = append(s.messages, newMessage(domain.SenderUser, text))
	doc := s.doc
	s.mu.Unlock()
	s.notify()

	reply, err := s.responder.Respond(ctx, text, doc)
	if err != nil {
		logger.Warn("responder %s failed: %v", s.responder.Name(), err)
		reply = FailureReply
	}

	s.mu.Lock()
	s.pending = false
	s.messages = append(s.messages, newMessage(domain.SenderAssistant, reply))
	s.mu.Unlock()
	s.notify()

	return nil
}

// AttachDocument replaces the current document and resets the log to a
// single assistant message announcing the load by name.
func (s *ChatService) AttachDocument(doc *domain.Document) {
	if doc == nil {
		return
	}

	s.mu.Lock()
	s.doc = doc
	s.messages = []domain.Message{
		newMessage(domain.SenderAssistant, loadedReply(doc.Name)),
	}
	s.mu.Unlock()
	s.notify()
}

// Clear wholesale-replaces the log with an empty one. The document stays
// loaded. Safe mid-response: a late resolution appends its assistant
// message to the cleared log and releases the pending flag as usual.
func (s *ChatService) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns a read-only copy of the conversation state.
func (s *ChatService) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]domain.Message, len(s.messages))
	copy(msgs, s.messages)

	return domain.Snapshot{
		Messages: msgs,
		Pending:  s.pending,
		Document: s.doc,
	}
}

// Subscribe returns a channel that receives a signal after every
// conversation mutation. The channel is buffered; a subscriber that falls
// behind coalesces signals rather than blocking the engine.
func (s *ChatService) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

// notify signals all subscribers without blocking.
func (s *ChatService) notify() {
	s.mu.Lock()
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// newMessage builds a whole message record; the log never holds a
// partially-constructed entry.
func newMessage(sender domain.Sender, text string) domain.Message {
	return domain.Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
	}
}

// loadedReply formats the load announcement for a document name.
func loadedReply(name string) string {
	return fmt.Sprintf(loadedReplyFormat, name)
}
