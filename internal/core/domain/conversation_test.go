package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_String(t *testing.T) {
	assert.Equal(t, "user", SenderUser.String())
	assert.Equal(t, "assistant", SenderAssistant.String())
}

func TestSnapshot_HasDocument(t *testing.T) {
	assert.False(t, Snapshot{}.HasDocument())
	assert.True(t, Snapshot{Document: &Document{Name: "alice.txt"}}.HasDocument())
}

func TestSnapshot_Last(t *testing.T) {
	assert.Nil(t, Snapshot{}.Last())

	snap := Snapshot{Messages: []Message{
		{ID: "m-1", Text: "hello", Sender: SenderUser, Timestamp: time.Now()},
		{ID: "m-2", Text: "hi", Sender: SenderAssistant, Timestamp: time.Now()},
	}}
	last := snap.Last()
	require.NotNil(t, last)
	assert.Equal(t, "m-2", last.ID)
	assert.Equal(t, SenderAssistant, last.Sender)
}
