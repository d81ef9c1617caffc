package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driven"
	"github.com/listenloom/docquery/internal/core/ports/driving"
	"github.com/listenloom/docquery/internal/logger"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// NoRelevantContentAnswer is returned when retrieval finds nothing.
// The LLM is not invoked in that case.
const NoRelevantContentAnswer = "I could not find any relevant information in the documents for your query."

// Library composes the ingestion and query pipelines behind the
// user-facing operations.
type Library struct {
	ingest      *IngestionPipeline
	retriever   *Retriever
	synthesizer *Synthesizer
	store       driven.ChunkStore
}

// NewLibrary creates the library service.
func NewLibrary(ingest *IngestionPipeline, retriever *Retriever, synthesizer *Synthesizer, store driven.ChunkStore) *Library {
	return &Library{
		ingest:      ingest,
		retriever:   retriever,
		synthesizer: synthesizer,
		store:       store,
	}
}

// Upload ingests one document file.
func (l *Library) Upload(ctx context.Context, path string, chunkSize, overlap int) (*domain.UploadReceipt, error) {
	if chunkSize <= 0 {
		chunkSize = driving.DefaultChunkSize
	}
	if overlap < 0 {
		overlap = driving.DefaultChunkOverlap
	}
	return l.ingest.Run(ctx, path, chunkSize, overlap)
}

// Search retrieves relevant chunks and synthesizes a grounded answer.
func (l *Library) Search(ctx context.Context, query, documentID string, limit int) (*domain.SearchAnswer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = driving.DefaultSearchLimit
	}

	chunks, err := l.retriever.Search(ctx, query, documentID, limit)
	if err != nil {
		return nil, err
	}

	if len(chunks) == 0 {
		logger.Debug("No relevant chunks found")
		return &domain.SearchAnswer{
			Answer:          NoRelevantContentAnswer,
			RetrievedChunks: []domain.RetrievedChunk{},
			SourceDocuments: []string{},
		}, nil
	}

	return l.synthesizer.Answer(ctx, query, chunks), nil
}

// ListDocuments returns aggregate metadata for every stored document.
func (l *Library) ListDocuments(ctx context.Context) ([]domain.DocumentInfo, error) {
	return l.store.ListDocuments(ctx)
}

// DeleteDocument removes every chunk of the document.
func (l *Library) DeleteDocument(ctx context.Context, documentID string) (int64, error) {
	if strings.TrimSpace(documentID) == "" {
		return 0, fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}
	return l.store.DeleteDocument(ctx, documentID)
}
