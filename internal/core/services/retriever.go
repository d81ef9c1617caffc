package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driven"
	"github.com/listenloom/docquery/internal/logger"
)

// FallbackScore is the fixed score assigned to chunks surviving the
// keyword fallback. The fallback trades precision for availability and
// does not rank by match strength.
const FallbackScore = 0.5

// Retriever finds the chunks most relevant to a query. The primary
// path is vector similarity search; when that call itself fails the
// retriever degrades to keyword matching over a full chunk scan.
type Retriever struct {
	store    driven.ChunkStore
	embedder *EmbeddingClient
}

// NewRetriever creates a retriever.
func NewRetriever(store driven.ChunkStore, embedder *EmbeddingClient) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Search returns up to limit chunks relevant to the query, highest
// score first, restricted to documentID when non-empty.
//
// A similarity search that succeeds with zero results yields an empty
// slice and no error; the fallback runs only when the search call
// fails. Context cancellation propagates instead of degrading.
func (r *Retriever) Search(ctx context.Context, query, documentID string, limit int) ([]domain.RetrievedChunk, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q, document filter: %q, limit: %d", query, documentID, limit)

	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidInput, limit)
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	chunks, err := r.store.VectorSearch(ctx, vector, limit, documentID)
	if err == nil {
		logger.Debug("Vector search returned %d chunks", len(chunks))
		return chunks, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	logger.Warn("Vector search failed, falling back to keyword matching: %v", err)
	return r.keywordFallback(ctx, query, documentID, limit)
}

// keywordFallback scans all chunks and keeps those containing any
// query word as a substring, each with the fixed fallback score.
func (r *Retriever) keywordFallback(ctx context.Context, query, documentID string, limit int) ([]domain.RetrievedChunk, error) {
	all, err := r.store.Find(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fallback search: %w", err)
	}

	words := strings.Fields(strings.ToLower(query))
	matched := make([]domain.RetrievedChunk, 0, limit)
	for _, chunk := range all {
		if !containsAnyWord(chunk.TextContent, words) {
			continue
		}
		matched = append(matched, domain.RetrievedChunk{
			DocumentChunk: chunk,
			Score:         FallbackScore,
		})
		if len(matched) == limit {
			break
		}
	}

	logger.Debug("Fallback search returned %d chunks", len(matched))
	return matched, nil
}

func containsAnyWord(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
