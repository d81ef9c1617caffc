package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, including
	// a non-positive chunk size or an overlap outside [0, chunk size).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension no extractor handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtraction indicates the format-specific reader failed.
	ErrExtraction = errors.New("text extraction failed")

	// ErrEmptyDocument indicates extraction produced no text content.
	ErrEmptyDocument = errors.New("no text content found in document")

	// ErrEmbedding indicates the embedding provider failed after all
	// retries were exhausted. It wraps the last underlying cause.
	ErrEmbedding = errors.New("embedding failed")

	// ErrStoreWrite indicates chunk persistence failed. The ingestion
	// run is aborted; nothing is partially persisted.
	ErrStoreWrite = errors.New("chunk store write failed")

	// ErrStoreSearch indicates the similarity search itself failed.
	// The retriever absorbs this by degrading to keyword matching;
	// it is not surfaced directly to callers.
	ErrStoreSearch = errors.New("vector search unavailable")
)
