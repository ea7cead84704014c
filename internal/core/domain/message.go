package domain

import "time"

// Sender identifies who produced a message.
type Sender string

const (
	// SenderUser marks a message typed by the user.
	SenderUser Sender = "user"

	// SenderAssistant marks a message produced by the responder.
	SenderAssistant Sender = "assistant"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// Message is one turn in the conversation.
// Messages are append-only and never mutated after creation.
type Message struct {
	// ID is unique within a session. It identifies the message for
	// rendering; it is not required to be globally unique.
	ID string

	// Text is the message content.
	Text string

	// Sender attributes the message to the user or the assistant.
	Sender Sender

	// Timestamp records when the message was created. It is display-only;
	// log insertion order is the ordering authority.
	Timestamp time.Time
}
