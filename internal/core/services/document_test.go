package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/booktalk-cli/internal/core/domain"
	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driven"
)

// MockDocumentSource implements driven.DocumentSource for testing.
type MockDocumentSource struct {
	ReadFunc  func(ctx context.Context, name string) ([]byte, error)
	WatchFunc func(ctx context.Context, name string, fn driven.ChangeFunc) error
	reads     int
}

func (m *MockDocumentSource) Read(ctx context.Context, name string) ([]byte, error) {
	m.reads++
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, name)
	}
	return nil, errors.New("not configured")
}

func (m *MockDocumentSource) Watch(ctx context.Context, name string, fn driven.ChangeFunc) error {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, name, fn)
	}
	return nil
}

func TestNewDocumentService(t *testing.T) {
	svc := NewDocumentService(&MockDocumentSource{})
	require.NotNil(t, svc)
}

func TestDocumentService_Load(t *testing.T) {
	source := &MockDocumentSource{
		ReadFunc: func(_ context.Context, name string) ([]byte, error) {
			return []byte("  Call me Ishmael.\n\nSome years ago...  "), nil
		},
	}
	svc := NewDocumentService(source)

	doc, err := svc.Load(context.Background(), "moby-dick.txt")
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "moby-dick.txt", doc.Name)
	// Content is stored verbatim, whitespace included.
	assert.Equal(t, "  Call me Ishmael.\n\nSome years ago...  ", doc.Content)
}

func TestDocumentService_Load_EmptyFile(t *testing.T) {
	source := &MockDocumentSource{
		ReadFunc: func(_ context.Context, _ string) ([]byte, error) {
			return []byte{}, nil
		},
	}
	svc := NewDocumentService(source)

	doc, err := svc.Load(context.Background(), "blank.txt")
	require.NoError(t, err)
	assert.Equal(t, "", doc.Content)
}

func TestDocumentService_Load_UnsupportedType(t *testing.T) {
	source := &MockDocumentSource{}
	svc := NewDocumentService(source)

	tests := []struct {
		name string
		file string
	}{
		{name: "pdf", file: "book.pdf"},
		{name: "epub", file: "book.epub"},
		{name: "no extension", file: "book"},
		{name: "uppercase extension", file: "book.TXT"},
		{name: "txt elsewhere in name", file: "book.txt.bak"},
		{name: "empty name", file: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := svc.Load(context.Background(), tt.file)
			assert.ErrorIs(t, err, domain.ErrUnsupportedType)
			assert.Nil(t, doc)
		})
	}

	assert.Zero(t, source.reads, "rejected names must not hit the source")
}

func TestDocumentService_Load_ReadFailure(t *testing.T) {
	cause := errors.New("permission denied")
	source := &MockDocumentSource{
		ReadFunc: func(_ context.Context, _ string) ([]byte, error) {
			return nil, cause
		},
	}
	svc := NewDocumentService(source)

	doc, err := svc.Load(context.Background(), "book.txt")
	assert.ErrorIs(t, err, domain.ErrReadFailure)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, doc)
}

func TestDocumentService_Load_NilSource(t *testing.T) {
	svc := NewDocumentService(nil)

	doc, err := svc.Load(context.Background(), "book.txt")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}
