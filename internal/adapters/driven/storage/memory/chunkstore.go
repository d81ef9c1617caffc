// Package memory provides an in-memory chunk store. It mirrors the
// SQLite adapter's contract and backs service tests and the "memory"
// storage backend.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks []domain.DocumentChunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// PutChunks stores a batch of chunks. The in-memory append is atomic
// under the lock, matching the all-or-nothing contract.
func (s *ChunkStore) PutChunks(_ context.Context, chunks []domain.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	return nil
}

// VectorSearch returns the limit nearest embedded chunks by cosine
// similarity, highest first.
func (s *ChunkStore) VectorSearch(_ context.Context, query []float32, limit int, documentID string) ([]domain.RetrievedChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []domain.RetrievedChunk
	for _, chunk := range s.chunks {
		if documentID != "" && chunk.DocumentID != documentID {
			continue
		}
		if len(chunk.Embedding) == 0 {
			continue
		}
		hits = append(hits, domain.RetrievedChunk{
			DocumentChunk: chunk,
			Score:         cosineSimilarity(query, chunk.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Find returns all chunks, optionally filtered to one document,
// ordered by document ID and chunk index.
func (s *ChunkStore) Find(_ context.Context, documentID string) ([]domain.DocumentChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.DocumentChunk
	for _, chunk := range s.chunks {
		if documentID != "" && chunk.DocumentID != documentID {
			continue
		}
		result = append(result, chunk)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DocumentID != result[j].DocumentID {
			return result[i].DocumentID < result[j].DocumentID
		}
		return result[i].ChunkIndex < result[j].ChunkIndex
	})
	return result, nil
}

// ListDocuments aggregates chunk rows into one entry per document.
func (s *ChunkStore) ListDocuments(_ context.Context) ([]domain.DocumentInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]*domain.DocumentInfo)
	for _, chunk := range s.chunks {
		info, ok := byID[chunk.DocumentID]
		if !ok {
			info = &domain.DocumentInfo{
				DocumentID:   chunk.DocumentID,
				DocumentName: chunk.DocumentName,
				DocumentType: chunk.DocumentType,
			}
			byID[chunk.DocumentID] = info
		}
		info.ChunkCount++
		if chunk.Timestamp.After(info.LastUpdated) {
			info.LastUpdated = chunk.Timestamp
		}
	}

	result := make([]domain.DocumentInfo, 0, len(byID))
	for _, info := range byID {
		result = append(result, *info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DocumentID < result[j].DocumentID })
	return result, nil
}

// DeleteDocument removes every chunk of the document and returns the
// number removed.
func (s *ChunkStore) DeleteDocument(_ context.Context, documentID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.chunks[:0]
	var deleted int64
	for _, chunk := range s.chunks {
		if chunk.DocumentID == documentID {
			deleted++
			continue
		}
		kept = append(kept, chunk)
	}
	s.chunks = kept
	return deleted, nil
}

// Close releases resources.
func (s *ChunkStore) Close() error {
	return nil
}

// cosineSimilarity returns 0 for mismatched or zero-magnitude vectors
// rather than failing; a chunk that cannot be compared simply ranks last.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		va, vb := float64(a[i]), float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
