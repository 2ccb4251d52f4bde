package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Reloader recomputes a dashboard snapshot.
type Reloader interface {
	Refresh(ctx context.Context) error
}

// ReloadFunc adapts a function to the Reloader interface.
type ReloadFunc func(ctx context.Context) error

// Refresh calls f.
func (f ReloadFunc) Refresh(ctx context.Context) error { return f(ctx) }

// Refresher periodically triggers dashboard reloads. Start and Stop are safe
// to call repeatedly; each Start cancels the previous loop before spawning a
// new one, so toggling never stacks tickers or overlaps reloads.
type Refresher struct {
	reloader Reloader
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher constructs a refresher with the given interval.
func NewRefresher(reloader Reloader, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		reloader: reloader,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the refresh loop, replacing any loop already running.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go r.run(ctx, done)
}

// Stop cancels the running loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Refresher) stopLocked() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil
	r.done = nil
}

func (r *Refresher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.reloader.Refresh(ctx); err != nil && ctx.Err() == nil {
				r.logger.Warn("dashboard refresh failed", zap.Error(err))
			}
		}
	}
}
