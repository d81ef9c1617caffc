// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ChunkStore: Chunk persistence and similarity search
//   - EmbeddingProvider: Remote text-to-vector capability
//   - LLMProvider: Remote text-to-text capability
//   - Extractor: Format-specific raw-bytes-to-plain-text adapter
//   - ExtractorRegistry: Selects an extractor by file extension
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
