package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingReloader struct {
	calls       atomic.Int64
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
	delay       time.Duration
}

func (c *countingReloader) Refresh(ctx context.Context) error {
	current := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		max := c.maxInFlight.Load()
		if current <= max || c.maxInFlight.CompareAndSwap(max, current) {
			break
		}
	}
	c.calls.Add(1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
		}
	}
	return nil
}

func TestRefresherTicks(t *testing.T) {
	reloader := &countingReloader{}
	r := NewRefresher(reloader, 10*time.Millisecond, zap.NewNop())

	r.Start()
	time.Sleep(55 * time.Millisecond)
	r.Stop()

	calls := reloader.calls.Load()
	assert.GreaterOrEqual(t, calls, int64(3))

	// Nothing fires once stopped.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, reloader.calls.Load())
}

func TestRefresherStopWithoutStart(t *testing.T) {
	r := NewRefresher(&countingReloader{}, time.Second, zap.NewNop())
	r.Stop()
	r.Stop()
}

func TestRefresherRapidToggleDoesNotOverlap(t *testing.T) {
	reloader := &countingReloader{delay: 5 * time.Millisecond}
	r := NewRefresher(reloader, 3*time.Millisecond, zap.NewNop())

	for i := 0; i < 10; i++ {
		r.Start()
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(30 * time.Millisecond)
	r.Stop()

	// Restarting replaces the previous loop, so reloads never stack.
	assert.Equal(t, int64(1), reloader.maxInFlight.Load())
}
