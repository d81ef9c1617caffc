// Package domain defines the core business entities for docquery.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentChunk: The unit of storage and retrieval
//   - RetrievedChunk: A chunk plus its query-time relevance score
//   - DocumentInfo: Aggregated per-document metadata
//   - SearchAnswer: The grounded answer returned for a query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
