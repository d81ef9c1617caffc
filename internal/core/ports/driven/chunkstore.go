package driven

import (
	"context"

	"github.com/listenloom/docquery/internal/core/domain"
)

// ChunkStore persists document chunks and serves similarity search.
// Backed by SQLite; an in-memory implementation exists for tests.
type ChunkStore interface {
	// PutChunks stores a batch of chunks. The write is all-or-nothing:
	// on error, none of the batch is persisted.
	PutChunks(ctx context.Context, chunks []domain.DocumentChunk) error

	// VectorSearch returns up to limit chunks nearest to the query
	// vector by cosine similarity, highest first. documentID restricts
	// the search to one document when non-empty. Chunks without an
	// embedding are never candidates.
	//
	// An infrastructure failure returns an error; it is never reported
	// as an empty result, so callers can distinguish "no matches" from
	// "search unavailable".
	VectorSearch(ctx context.Context, query []float32, limit int, documentID string) ([]domain.RetrievedChunk, error)

	// Find returns all stored chunks, filtered to one document when
	// documentID is non-empty, ordered by document and chunk index.
	Find(ctx context.Context, documentID string) ([]domain.DocumentChunk, error)

	// ListDocuments returns one aggregate row per stored document.
	ListDocuments(ctx context.Context) ([]domain.DocumentInfo, error)

	// DeleteDocument removes every chunk sharing the document ID and
	// returns the number of chunks deleted.
	DeleteDocument(ctx context.Context, documentID string) (int64, error)

	// Close releases resources.
	Close() error
}
