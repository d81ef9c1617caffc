package driving

import (
	"context"

	"github.com/listenloom/docquery/internal/core/domain"
)

// Default parameters for the user-facing operations.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultSearchLimit  = 5
)

// LibraryService exposes the document library operations to external
// actors. It is transport-agnostic: the CLI and MCP adapters both
// drive the same interface.
type LibraryService interface {
	// Upload ingests one document file: extract, chunk, embed, persist.
	// A non-positive chunkSize and a negative overlap fall back to the
	// defaults; an overlap of zero is honoured.
	Upload(ctx context.Context, path string, chunkSize, overlap int) (*domain.UploadReceipt, error)

	// Search retrieves the most relevant chunks for the query and
	// synthesizes a grounded answer. documentID restricts the search
	// to one document when non-empty. limit falls back to the default
	// when zero or negative.
	Search(ctx context.Context, query, documentID string, limit int) (*domain.SearchAnswer, error)

	// ListDocuments returns aggregate metadata for every stored document.
	ListDocuments(ctx context.Context) ([]domain.DocumentInfo, error)

	// DeleteDocument removes a document and all its chunks, returning
	// the number of chunks deleted.
	DeleteDocument(ctx context.Context, documentID string) (int64, error)
}
