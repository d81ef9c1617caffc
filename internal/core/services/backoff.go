package services

import (
	"context"
	"errors"
	"strings"
	"time"
)

// SleepFunc suspends for the given duration or until the context is
// cancelled. Tests inject a recording implementation to exercise the
// retry policy without real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleepContext is the production SleepFunc.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy describes exponential backoff for transient remote
// failures: attempt n waits BaseDelay * Multiplier^(n-1), capped at
// MaxDelay. A timeout-class failure waits an additional TimeoutExtra
// before the next attempt.
type RetryPolicy struct {
	MaxAttempts  int
	BaseDelay    time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	TimeoutExtra time.Duration
}

// DefaultRetryPolicy matches the embedding provider policy: the
// initial call plus up to 3 retries, 4s base delay doubling up to 20s,
// plus 5s after deadline-exceeded failures.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  4,
		BaseDelay:    4 * time.Second,
		Multiplier:   2,
		MaxDelay:     20 * time.Second,
		TimeoutExtra: 5 * time.Second,
	}
}

// Delay returns the backoff before the attempt following the given
// 1-based failed attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		d *= p.Multiplier
	}
	if max := float64(p.MaxDelay); p.MaxDelay > 0 && d > max {
		d = max
	}
	return time.Duration(d)
}

// Run invokes op up to MaxAttempts times, sleeping per the policy
// between attempts. It returns nil on the first success, the last
// error once attempts are exhausted, or the context error if the
// inter-attempt sleep is interrupted.
func (p RetryPolicy) Run(ctx context.Context, sleep SleepFunc, op func(ctx context.Context) error) error {
	if sleep == nil {
		sleep = sleepContext
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		delay := p.Delay(attempt)
		if isTimeoutClass(lastErr) {
			delay += p.TimeoutExtra
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
	return lastErr
}

// isTimeoutClass reports whether the error looks like a transport
// deadline being exceeded, including provider-reported 504 responses.
func isTimeoutClass(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "504")
}
