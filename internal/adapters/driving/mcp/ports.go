package mcp

import (
	"context"

	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driving"
)

// DocumentReader retrieves the stored chunks of a document. It backs
// the document content resource; the chunk store satisfies it.
type DocumentReader interface {
	Find(ctx context.Context, documentID string) ([]domain.DocumentChunk, error)
}

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Library provides document upload, search and management.
	Library driving.LibraryService

	// Chunks backs the document content resource. Optional.
	Chunks DocumentReader
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	return nil
}
