// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
)

// ConversationChanged signals that the engine mutated the conversation;
// the view re-reads its snapshot.
type ConversationChanged struct{}

// SubmissionResolved signals that a submission finished: the assistant
// message (reply or failure text) has been appended to the log.
type SubmissionResolved struct{}

// SubmissionRejected carries the admission-control rejection, along with
// the rejected text so the view can hand it back to the user.
type SubmissionRejected struct {
	Err  error
	Text string
}

// DocumentLoaded carries the result of a load attempt.
type DocumentLoaded struct {
	Document *domain.Document
	Err      error
}

// DocumentChanged signals that the watched book file changed on disk.
type DocumentChanged struct {
	Name string
}

// ConversationCleared signals the log was emptied.
type ConversationCleared struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
