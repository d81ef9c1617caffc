package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driven"
	"github.com/listenloom/docquery/internal/logger"
)

// IngestionPipeline runs one document through extraction, chunking,
// embedding and persistence. A failure at any stage aborts the run;
// the store never receives a partially embedded document.
type IngestionPipeline struct {
	extractors driven.ExtractorRegistry
	embedder   *EmbeddingClient
	store      driven.ChunkStore
}

// NewIngestionPipeline creates an ingestion pipeline.
func NewIngestionPipeline(extractors driven.ExtractorRegistry, embedder *EmbeddingClient, store driven.ChunkStore) *IngestionPipeline {
	return &IngestionPipeline{
		extractors: extractors,
		embedder:   embedder,
		store:      store,
	}
}

// Run ingests the file at path. It fails with
// domain.ErrUnsupportedFormat for an unrecognized extension,
// domain.ErrExtraction when the format reader fails, and
// domain.ErrEmptyDocument when extraction yields no text.
func (p *IngestionPipeline) Run(ctx context.Context, path string, chunkSize, overlap int) (*domain.UploadReceipt, error) {
	logger.Section("Ingestion")
	logger.Debug("File: %s, chunk size: %d, overlap: %d", path, chunkSize, overlap)

	chunker, err := NewChunker(chunkSize, overlap)
	if err != nil {
		return nil, err
	}

	ext := NormalizeExtension(path)
	extractor, err := p.extractors.ForExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFormat, ext)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	extracted, err := extractor.Extract(ctx, content)
	if err != nil {
		if errors.Is(err, domain.ErrExtraction) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}
	if strings.TrimSpace(extracted.Text) == "" {
		return nil, domain.ErrEmptyDocument
	}

	documentID := uuid.New().String()
	documentName := filepath.Base(path)

	windows := chunker.Split(extracted.Text)
	logger.Info("Document %s: %d chunks from %d bytes of text", documentName, len(windows), len(extracted.Text))

	now := time.Now().UTC()
	chunks := make([]domain.DocumentChunk, len(windows))
	for i, w := range windows {
		chunks[i] = domain.DocumentChunk{
			DocumentID:   documentID,
			DocumentName: documentName,
			DocumentType: ext,
			ChunkIndex:   w.Index,
			TextContent:  w.Text,
			CharStart:    w.Start,
			CharEnd:      w.End,
			Timestamp:    now,
		}
	}

	// Chunks are embedded one at a time through the shared client so
	// every request passes the process-wide pacing queue. Any failure
	// aborts the whole document: the store must never hold a mix of
	// embedded and un-embedded chunks for one ingestion run.
	for i := range chunks {
		logger.Debug("Embedding chunk %d/%d", i+1, len(chunks))
		vector, err := p.embedder.Embed(ctx, chunks[i].TextContent)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunks[i].ChunkIndex, err)
		}
		chunks[i].Embedding = vector
	}

	if err := p.store.PutChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
	}

	logger.Info("Stored %d chunks for document %s", len(chunks), documentID)
	return &domain.UploadReceipt{
		DocumentID:    documentID,
		DocumentName:  documentName,
		ChunksCreated: len(chunks),
	}, nil
}

// NormalizeExtension returns the lowercase file extension without the
// leading dot.
func NormalizeExtension(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
