package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
)

// MockResponder implements driven.Responder for testing.
type MockResponder struct {
	RespondFunc func(ctx context.Context, text string, doc *domain.Document) (string, error)
	calls       atomic.Int64
}

func (m *MockResponder) Respond(ctx context.Context, text string, doc *domain.Document) (string, error) {
	m.calls.Add(1)
	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, text, doc)
	}
	return "ok", nil
}

func (m *MockResponder) Name() string {
	return "mock"
}

func (m *MockResponder) Calls() int64 {
	return m.calls.Load()
}

// blockingResponder blocks until released, to hold a response in flight.
type blockingResponder struct {
	release chan struct{}
	reply   string
	calls   atomic.Int64
}

func newBlockingResponder(reply string) *blockingResponder {
	return &blockingResponder{release: make(chan struct{}), reply: reply}
}

func (b *blockingResponder) Respond(ctx context.Context, _ string, _ *domain.Document) (string, error) {
	b.calls.Add(1)
	select {
	case <-b.release:
		return b.reply, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (b *blockingResponder) Name() string {
	return "blocking"
}

func TestNewChatService(t *testing.T) {
	svc := NewChatService(&MockResponder{})
	require.NotNil(t, svc)

	snap := svc.Snapshot()
	assert.Empty(t, snap.Messages)
	assert.False(t, snap.Pending)
	assert.False(t, snap.HasDocument())
}

func TestChatService_Submit(t *testing.T) {
	mock := &MockResponder{
		RespondFunc: func(_ context.Context, text string, _ *domain.Document) (string, error) {
			return "echo: " + text, nil
		},
	}
	svc := NewChatService(mock)

	err := svc.Submit(context.Background(), "hello")
	require.NoError(t, err)

	snap := svc.Snapshot()
	require.Len(t, snap.Messages, 2)

	assert.Equal(t, domain.SenderUser, snap.Messages[0].Sender)
	assert.Equal(t, "hello", snap.Messages[0].Text)
	assert.Equal(t, domain.SenderAssistant, snap.Messages[1].Sender)
	assert.Equal(t, "echo: hello", snap.Messages[1].Text)
	assert.False(t, snap.Pending)

	// IDs are unique within the session
	assert.NotEqual(t, snap.Messages[0].ID, snap.Messages[1].ID)
	assert.NotEmpty(t, snap.Messages[0].ID)
	assert.False(t, snap.Messages[0].Timestamp.IsZero())
}

func TestChatService_Submit_TrimsText(t *testing.T) {
	mock := &MockResponder{}
	svc := NewChatService(mock)

	require.NoError(t, svc.Submit(context.Background(), "  padded  "))

	snap := svc.Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "padded", snap.Messages[0].Text)
}

func TestChatService_Submit_EmptyIsNoOp(t *testing.T) {
	mock := &MockResponder{}
	svc := NewChatService(mock)

	for _, text := range []string{"", "   ", "\n\t "} {
		err := svc.Submit(context.Background(), text)
		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	}

	snap := svc.Snapshot()
	assert.Empty(t, snap.Messages)
	assert.False(t, snap.Pending)
	assert.Zero(t, mock.Calls(), "responder must not be invoked for rejected submissions")
}

func TestChatService_Submit_WhilePendingIsNoOp(t *testing.T) {
	blocking := newBlockingResponder("done")
	svc := NewChatService(blocking)

	go func() { _ = svc.Submit(context.Background(), "first") }()

	require.Eventually(t, func() bool {
		return svc.Snapshot().Pending
	}, time.Second, time.Millisecond, "first submission should be pending")

	// Rapid repeated calls are all rejected while the response is in flight.
	for i := 0; i < 5; i++ {
		err := svc.Submit(context.Background(), "second")
		assert.ErrorIs(t, err, domain.ErrResponsePending)
	}

	snap := svc.Snapshot()
	require.Len(t, snap.Messages, 1, "rejected submissions must not touch the log")
	assert.Equal(t, "first", snap.Messages[0].Text)

	close(blocking.release)

	require.Eventually(t, func() bool {
		return !svc.Snapshot().Pending
	}, time.Second, time.Millisecond)

	snap = svc.Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "done", snap.Messages[1].Text)
	assert.EqualValues(t, 1, blocking.calls.Load())
}

func TestChatService_Submit_ResponderFailure(t *testing.T) {
	mock := &MockResponder{
		RespondFunc: func(_ context.Context, _ string, _ *domain.Document) (string, error) {
			return "", errors.New("backend exploded")
		},
	}
	svc := NewChatService(mock)

	// Failures are swallowed, never propagated past the engine.
	err := svc.Submit(context.Background(), "hello")
	require.NoError(t, err)

	snap := svc.Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, domain.SenderAssistant, snap.Messages[1].Sender)
	assert.Equal(t, FailureReply, snap.Messages[1].Text)
	assert.False(t, snap.Pending)
}

func TestChatService_Submit_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &MockResponder{
		RespondFunc: func(ctx context.Context, _ string, _ *domain.Document) (string, error) {
			return "", ctx.Err()
		},
	}
	svc := NewChatService(mock)

	require.NoError(t, svc.Submit(ctx, "hello"))

	snap := svc.Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, FailureReply, snap.Messages[1].Text)
	assert.False(t, snap.Pending, "pending must clear on cancellation")
}

func TestChatService_Submit_NoResponder(t *testing.T) {
	svc := NewChatService(nil)

	err := svc.Submit(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrResponderUnavailable)
	assert.Empty(t, svc.Snapshot().Messages)
}

func TestChatService_Submit_SeesCurrentDocument(t *testing.T) {
	var seen *domain.Document
	mock := &MockResponder{
		RespondFunc: func(_ context.Context, _ string, doc *domain.Document) (string, error) {
			seen = doc
			return "ok", nil
		},
	}
	svc := NewChatService(mock)

	require.NoError(t, svc.Submit(context.Background(), "before load"))
	assert.Nil(t, seen)

	svc.AttachDocument(&domain.Document{Name: "alice.txt", Content: "down the rabbit hole"})

	require.NoError(t, svc.Submit(context.Background(), "after load"))
	require.NotNil(t, seen)
	assert.Equal(t, "alice.txt", seen.Name)
}

func TestChatService_AttachDocument_ResetsLog(t *testing.T) {
	svc := NewChatService(&MockResponder{})

	require.NoError(t, svc.Submit(context.Background(), "hello"))
	require.Len(t, svc.Snapshot().Messages, 2)

	svc.AttachDocument(&domain.Document{Name: "alice.txt", Content: "text"})

	snap := svc.Snapshot()
	require.Len(t, snap.Messages, 1, "load replaces the log with a single announcement")
	assert.Equal(t, domain.SenderAssistant, snap.Messages[0].Sender)
	assert.Contains(t, snap.Messages[0].Text, "alice.txt")
	require.True(t, snap.HasDocument())
	assert.Equal(t, "alice.txt", snap.Document.Name)
}

func TestChatService_AttachDocument_ReplacesWholesale(t *testing.T) {
	svc := NewChatService(&MockResponder{})

	svc.AttachDocument(&domain.Document{Name: "alice.txt", Content: "one"})
	svc.AttachDocument(&domain.Document{Name: "dracula.txt", Content: "two"})

	snap := svc.Snapshot()
	require.True(t, snap.HasDocument())
	assert.Equal(t, "dracula.txt", snap.Document.Name)
	assert.Equal(t, "two", snap.Document.Content)
	require.Len(t, snap.Messages, 1)
	assert.Contains(t, snap.Messages[0].Text, "dracula.txt")
}

func TestChatService_AttachDocument_NilIsNoOp(t *testing.T) {
	svc := NewChatService(&MockResponder{})
	require.NoError(t, svc.Submit(context.Background(), "hello"))

	svc.AttachDocument(nil)

	snap := svc.Snapshot()
	assert.Len(t, snap.Messages, 2)
	assert.False(t, snap.HasDocument())
}

func TestChatService_Clear(t *testing.T) {
	svc := NewChatService(&MockResponder{})
	svc.AttachDocument(&domain.Document{Name: "alice.txt"})
	require.NoError(t, svc.Submit(context.Background(), "hello"))

	svc.Clear()

	snap := svc.Snapshot()
	assert.Empty(t, snap.Messages)
	assert.True(t, snap.HasDocument(), "clearing the log keeps the document")
}

func TestChatService_Clear_EmptyLog(t *testing.T) {
	svc := NewChatService(&MockResponder{})
	svc.Clear()
	assert.Empty(t, svc.Snapshot().Messages)
}

func TestChatService_Clear_MidPending(t *testing.T) {
	blocking := newBlockingResponder("late reply")
	svc := NewChatService(blocking)

	go func() { _ = svc.Submit(context.Background(), "hello") }()

	require.Eventually(t, func() bool {
		return svc.Snapshot().Pending
	}, time.Second, time.Millisecond)

	svc.Clear()

	snap := svc.Snapshot()
	assert.Empty(t, snap.Messages, "clear empties the log even mid-response")
	assert.True(t, snap.Pending, "the in-flight response is not cancelled")

	close(blocking.release)

	require.Eventually(t, func() bool {
		return !svc.Snapshot().Pending
	}, time.Second, time.Millisecond, "pending must clear after the late resolution")

	// The late resolution lands in the cleared log.
	snap = svc.Snapshot()
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, "late reply", snap.Messages[0].Text)
}

func TestChatService_Snapshot_IsCopy(t *testing.T) {
	svc := NewChatService(&MockResponder{})
	require.NoError(t, svc.Submit(context.Background(), "hello"))

	snap := svc.Snapshot()
	snap.Messages[0].Text = "mutated"

	assert.Equal(t, "hello", svc.Snapshot().Messages[0].Text)
}

func TestChatService_Subscribe(t *testing.T) {
	svc := NewChatService(&MockResponder{})
	ch := svc.Subscribe()

	require.NoError(t, svc.Submit(context.Background(), "hello"))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal after submission")
	}
}

func TestChatService_Subscribe_ReusedAcrossMutations(t *testing.T) {
	svc := NewChatService(&MockResponder{})
	ch := svc.Subscribe()

	receive := func() {
		t.Helper()
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("expected a change signal on the long-lived channel")
		}
	}

	require.NoError(t, svc.Submit(context.Background(), "hello"))
	receive()

	// The same channel keeps signalling; no re-subscription is needed.
	svc.AttachDocument(&domain.Document{Name: "alice.txt", Content: "text"})
	receive()

	svc.Clear()
	receive()

	assert.Len(t, svc.subs, 1, "one subscriber registers one channel")
}

func TestChatService_Subscribe_CoalescesBurst(t *testing.T) {
	svc := NewChatService(&MockResponder{})
	ch := svc.Subscribe()

	// Several mutations land before the subscriber reads; the buffered
	// channel holds a signal rather than dropping the change entirely.
	require.NoError(t, svc.Submit(context.Background(), "one"))
	require.NoError(t, svc.Submit(context.Background(), "two"))
	svc.Clear()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a coalesced change signal")
	}
	assert.Empty(t, svc.Snapshot().Messages)
}
