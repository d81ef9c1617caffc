package driven

import "context"

// EmbeddingProvider generates vector embeddings from text.
//
// Note: this is the raw remote capability. Rate limiting, truncation
// and retry policy live in the core EmbeddingClient, not here.
//
// Implementations may include:
//   - Google Gemini (embedding-001)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingProvider interface {
	// EmbedOne generates a vector embedding for a single text.
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}

// LLMProvider produces text completions from a prompt.
//
// Implementations may include:
//   - Google Gemini (gemini-2.0-flash)
//   - OpenAI (gpt-4o-mini)
type LLMProvider interface {
	// Complete generates a completion for the given prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}
