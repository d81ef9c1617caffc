package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestSpacing is the default minimum interval between
// embedding requests, shared process-wide.
const DefaultRequestSpacing = 2 * time.Second

// Pacer enforces a minimum spacing between remote embedding requests.
// One Pacer instance is constructed in the composition root and shared
// by reference across every pipeline, so concurrent embedding calls
// serialize through a single queue.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer that admits one request per spacing
// interval. A non-positive spacing disables pacing.
func NewPacer(spacing time.Duration) *Pacer {
	if spacing <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(spacing), 1)}
}

// Wait blocks until the spacing since the previous admitted request
// has elapsed, or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
