package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer_EnforcesSpacing(t *testing.T) {
	spacing := 50 * time.Millisecond
	p := NewPacer(spacing)
	ctx := context.Background()

	require.NoError(t, p.Wait(ctx))
	start := time.Now()
	require.NoError(t, p.Wait(ctx))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, spacing, "back-to-back waits must be separated by the spacing")
}

func TestPacer_DisabledWhenNonPositive(t *testing.T) {
	p := NewPacer(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Wait(ctx))
	}
	assert.Less(t, time.Since(start), 20*time.Millisecond)
}

func TestPacer_RespectsCancellation(t *testing.T) {
	p := NewPacer(time.Hour)
	ctx := context.Background()

	require.NoError(t, p.Wait(ctx))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, p.Wait(cancelled))
}

func TestPacer_SharedAcrossGoroutines(t *testing.T) {
	spacing := 20 * time.Millisecond
	p := NewPacer(spacing)
	ctx := context.Background()

	const callers = 4
	done := make(chan struct{}, callers)
	start := time.Now()
	for i := 0; i < callers; i++ {
		go func() {
			_ = p.Wait(ctx)
			done <- struct{}{}
		}()
	}
	for i := 0; i < callers; i++ {
		<-done
	}

	// Four admissions through one pacer need at least three spacings.
	assert.GreaterOrEqual(t, time.Since(start), 3*spacing)
}
