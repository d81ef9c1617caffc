package services

import (
	"context"
	"fmt"

	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driven"
	"github.com/listenloom/docquery/internal/logger"
)

// DefaultMaxTextChars is the default truncation limit applied before
// sending text to the embedding provider. Oversized inputs are a known
// cause of provider-side timeouts.
const DefaultMaxTextChars = 8000

// EmbeddingClient wraps a remote embedding provider with the policy
// the raw provider does not carry: input truncation, process-wide
// request pacing, and retry with exponential backoff.
type EmbeddingClient struct {
	provider driven.EmbeddingProvider
	pacer    *Pacer
	policy   RetryPolicy
	maxChars int
	sleep    SleepFunc
}

// EmbeddingClientOption configures an EmbeddingClient.
type EmbeddingClientOption func(*EmbeddingClient)

// WithMaxTextChars overrides the truncation limit.
func WithMaxTextChars(n int) EmbeddingClientOption {
	return func(c *EmbeddingClient) {
		if n > 0 {
			c.maxChars = n
		}
	}
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(p RetryPolicy) EmbeddingClientOption {
	return func(c *EmbeddingClient) {
		c.policy = p
	}
}

// WithSleep overrides the inter-attempt sleep. Tests use this to run
// the retry policy without real delays.
func WithSleep(sleep SleepFunc) EmbeddingClientOption {
	return func(c *EmbeddingClient) {
		c.sleep = sleep
	}
}

// NewEmbeddingClient creates an embedding client. The pacer is shared
// by reference: pass the same instance to every client so concurrent
// pipelines serialize through one request queue.
func NewEmbeddingClient(provider driven.EmbeddingProvider, pacer *Pacer, opts ...EmbeddingClientOption) *EmbeddingClient {
	c := &EmbeddingClient{
		provider: provider,
		pacer:    pacer,
		policy:   DefaultRetryPolicy(),
		maxChars: DefaultMaxTextChars,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dimensions returns the provider's embedding vector size.
func (c *EmbeddingClient) Dimensions() int {
	return c.provider.Dimensions()
}

// Embed generates an embedding for the text. It waits out the shared
// request spacing, truncates oversized input, and retries transient
// provider failures per the policy. Once retries are exhausted it
// fails with domain.ErrEmbedding wrapping the last cause; callers
// never receive a partial vector.
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limit: %w", err)
		}
	}

	if len(text) > c.maxChars {
		logger.Warn("text truncated from %d to %d characters before embedding", len(text), c.maxChars)
		text = text[:c.maxChars]
	}

	var vector []float32
	err := c.policy.Run(ctx, c.sleep, func(ctx context.Context) error {
		v, err := c.provider.EmbedOne(ctx, text)
		if err != nil {
			logger.Warn("embedding attempt failed: %v", err)
			return err
		}
		if len(v) == 0 {
			return fmt.Errorf("provider %s returned an empty vector", c.provider.ModelName())
		}
		vector = v
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}
	return vector, nil
}
