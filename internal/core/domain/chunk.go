package domain

import "time"

// DocumentChunk is the unit of storage and retrieval. A document is
// represented as the set of chunks sharing a DocumentID; there is no
// separately stored document record.
type DocumentChunk struct {
	// DocumentID is the opaque identifier assigned at ingestion time.
	// It is stable for the document's lifetime.
	DocumentID string

	// DocumentName is the human-readable file name.
	DocumentName string

	// DocumentType is the normalized file extension without the dot
	// (e.g. "pdf", "txt").
	DocumentType string

	// ChunkIndex is the zero-based position among chunks of the same
	// document. Indices are contiguous from 0 and define display order.
	ChunkIndex int

	// TextContent is the chunk's text. Empty chunks are dropped before
	// persistence.
	TextContent string

	// CharStart and CharEnd are byte offsets into the original extracted
	// text, recorded before whitespace trimming. Used for traceability
	// only; never recomputed after storage.
	CharStart int
	CharEnd   int

	// Embedding is the vector representation attached by the embedding
	// step. Chunks without an embedding are never searchable.
	Embedding []float32

	// PageNumber is optional provenance for paginated formats.
	PageNumber *int

	// SectionTitle is optional provenance for structured formats.
	SectionTitle *string

	// Timestamp is the creation time, set once and never mutated.
	Timestamp time.Time
}

// RetrievedChunk is a DocumentChunk with a relevance score attached
// transiently at query time. It is never persisted.
type RetrievedChunk struct {
	DocumentChunk

	// Score is the store-reported similarity, or the fixed fallback
	// heuristic value when keyword matching was used.
	Score float64
}

// DocumentInfo is the aggregate view of one document, computed over the
// set of chunks sharing a DocumentID.
type DocumentInfo struct {
	DocumentID   string
	DocumentName string
	DocumentType string
	ChunkCount   int
	LastUpdated  time.Time
}

// UploadReceipt reports the outcome of a successful ingestion run.
type UploadReceipt struct {
	DocumentID    string
	DocumentName  string
	ChunksCreated int
}

/// SearchAnswer is the result of a query: a generated answer grounded in
// the retrieved chunks, plus the chunks themselves so callers retain
// partial value even when generation fails.
type SearchAnswer struct {
	// Answer is the generated text. When answer generation fails this
	// carries a user-visible error message rather than an empty string.
	Answer string

	// RetrievedChunks are the chunks used as context, highest score first.
	RetrievedChunks []RetrievedChunk

	// SourceDocuments are the distinct document names across the
	// retrieved chunks. Order is not guaranteed.
	SourceDocuments []string
}

// SourceNames returns the deduplicated document names across chunks.
// Order follows first appearance.
func SourceNames(chunks []RetrievedChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	names := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if _, ok := seen[c.DocumentName]; ok {
			continue
		}
		seen[c.DocumentName] = struct{}{}
		names = append(names, c.DocumentName)
	}
	return names
}
