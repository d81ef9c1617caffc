package mcp

import (
	"context"

	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driving"
)

// mockLibrary implements driving.LibraryService for testing.
type mockLibrary struct {
	receipt *domain.UploadReceipt
	answer  *domain.SearchAnswer
	docs    []domain.DocumentInfo
	deleted int64
	err     error

	lastPath      string
	lastQuery     string
	lastDocID     string
	lastLimit     int
	lastChunkSize int
	lastOverlap   int
}

var _ driving.LibraryService = (*mockLibrary)(nil)

func (m *mockLibrary) Upload(_ context.Context, path string, chunkSize, overlap int) (*domain.UploadReceipt, error) {
	m.lastPath = path
	m.lastChunkSize = chunkSize
	m.lastOverlap = overlap
	if m.err != nil {
		return nil, m.err
	}
	return m.receipt, nil
}

func (m *mockLibrary) Search(_ context.Context, query, documentID string, limit int) (*domain.SearchAnswer, error) {
	m.lastQuery = query
	m.lastDocID = documentID
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockLibrary) ListDocuments(context.Context) ([]domain.DocumentInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

func (m *mockLibrary) DeleteDocument(_ context.Context, documentID string) (int64, error) {
	m.lastDocID = documentID
	if m.err != nil {
		return 0, m.err
	}
	return m.deleted, nil
}

// mockReader implements DocumentReader for testing.
type mockReader struct {
	chunks []domain.DocumentChunk
	err    error
}

func (m *mockReader) Find(context.Context, string) ([]domain.DocumentChunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}
