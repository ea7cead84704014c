package domain

// Snapshot is a read-only view of the conversation state, handed to the
// rendering layer after every mutation. The Messages slice is a copy; the
// receiver may not observe later appends through it.
type Snapshot struct {
	// Messages is the ordered conversation log.
	Messages []Message

	// Pending reports whether a response is in flight.
	Pending bool

	// Document is the currently loaded book, or nil when none is loaded.
	Document *Document
}

// HasDocument reports whether a book is loaded.
func (s Snapshot) HasDocument() bool {
	return s.Document != nil
}

// Last returns the most recent message, or nil for an empty log.
func (s Snapshot) Last() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}
