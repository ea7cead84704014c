package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
)

func msg(sender domain.Sender, text string) domain.Message {
	return domain.Message{
		ID:        text,
		Text:      text,
		Sender:    sender,
		Timestamp: time.Date(2026, 8, 31, 14, 5, 0, 0, time.UTC),
	}
}

func TestNewTranscript(t *testing.T) {
	tr := NewTranscript(nil)
	require.NotNil(t, tr)

	assert.Empty(t, tr.Messages())
	assert.False(t, tr.Pending())
}

func TestTranscript_EmptyState(t *testing.T) {
	tr := NewTranscript(nil)
	tr.SetConversation(nil, false)

	assert.Contains(t, tr.View(), "No messages yet")
}

func TestTranscript_SetConversation(t *testing.T) {
	tr := NewTranscript(nil)
	tr.SetDimensions(120, 40)

	tr.SetConversation([]domain.Message{
		msg(domain.SenderUser, "who is the villain?"),
		msg(domain.SenderAssistant, "The Queen of Hearts."),
	}, false)

	view := tr.View()
	assert.Contains(t, view, "You")
	assert.Contains(t, view, "who is the villain?")
	assert.Contains(t, view, "Assistant")
	assert.Contains(t, view, "The Queen of Hearts.")
	assert.Contains(t, view, "14:05")
}

func TestTranscript_PendingIndicator(t *testing.T) {
	tr := NewTranscript(nil)
	tr.SetDimensions(120, 40)

	tr.SetConversation([]domain.Message{msg(domain.SenderUser, "hello")}, true)
	assert.Contains(t, tr.View(), thinkingIndicator)
	assert.True(t, tr.Pending())

	tr.SetConversation([]domain.Message{msg(domain.SenderUser, "hello")}, false)
	assert.NotContains(t, tr.View(), thinkingIndicator)
}

func TestTranscript_PendingOnEmptyLog(t *testing.T) {
	tr := NewTranscript(nil)
	tr.SetDimensions(120, 40)

	// Clear mid-response leaves an empty log with the indicator still up.
	tr.SetConversation(nil, true)

	view := tr.View()
	assert.Contains(t, view, thinkingIndicator)
	assert.NotContains(t, view, "No messages yet")
}

func TestTranscript_SetDimensions(t *testing.T) {
	tr := NewTranscript(nil)
	tr.SetConversation([]domain.Message{msg(domain.SenderUser, "hello")}, false)

	tr.SetDimensions(40, 10)
	assert.Contains(t, tr.View(), "hello")
}
