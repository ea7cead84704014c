package placeholder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
)

// fast returns a responder with near-zero latency for tests.
func fast() *Responder {
	return NewWithConfig(Config{
		MinDelay: time.Millisecond,
		MaxDelay: 2 * time.Millisecond,
	})
}

func TestNew_Defaults(t *testing.T) {
	r := New()
	assert.Equal(t, DefaultMinDelay, r.minDelay)
	assert.Equal(t, DefaultMaxDelay, r.maxDelay)
}

func TestNewWithConfig_InvalidBounds(t *testing.T) {
	r := NewWithConfig(Config{MinDelay: 500 * time.Millisecond, MaxDelay: 100 * time.Millisecond})
	assert.Equal(t, 500*time.Millisecond, r.minDelay)
	assert.Greater(t, r.maxDelay, r.minDelay)
}

func TestResponder_Respond_NoDocument(t *testing.T) {
	reply, err := fast().Respond(context.Background(), "hello", nil)
	require.NoError(t, err)

	assert.Equal(t, `You said: "hello". Please upload a book first to have meaningful conversations about it!`, reply)
}

func TestResponder_Respond_WithDocument(t *testing.T) {
	doc := &domain.Document{Name: "alice.txt", Content: "down the rabbit hole"}

	reply, err := fast().Respond(context.Background(), "who is the villain?", doc)
	require.NoError(t, err)

	assert.Equal(t, `I understand you're asking about "who is the villain?". Once we connect to Claude API, I'll analyze the book content to give you a detailed answer! 📖`, reply)
}

func TestResponder_Respond_EchoesVerbatim(t *testing.T) {
	// Text with quotes and formatting verbs passes through untouched.
	reply, err := fast().Respond(context.Background(), `100%% "quoted"`, nil)
	require.NoError(t, err)
	assert.Contains(t, reply, `100%% "quoted"`)
}

func TestResponder_Respond_WaitsMinimumDelay(t *testing.T) {
	r := NewWithConfig(Config{MinDelay: 50 * time.Millisecond, MaxDelay: 60 * time.Millisecond})

	start := time.Now()
	_, err := r.Respond(context.Background(), "hello", nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestResponder_Respond_ContextCancelled(t *testing.T) {
	r := NewWithConfig(Config{MinDelay: 10 * time.Second, MaxDelay: 20 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	reply, err := r.Respond(ctx, "hello", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, reply)
}

func TestResponder_Name(t *testing.T) {
	assert.Equal(t, "placeholder", New().Name())
}
