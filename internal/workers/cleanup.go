package workers

import (
	"context"
	"sync"
	"time"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/store"
)

// sweepTimeout bounds one full sweep so a stuck database cannot wedge the
// worker loop.
const sweepTimeout = 30 * time.Second

// cleanupWorker periodically deletes rows that have aged out: expired quote
// cache entries, expired sessions, and rate-limit windows that have closed.
// None of these deletions affect correctness (reads already filter on
// expiry); the worker only keeps the tables from growing without bound.
type cleanupWorker struct {
	quoteCache store.QuoteCacheRepository
	sessions   store.SessionRepository
	rateLimits store.RateLimitRepository

	interval time.Duration
	logger   *logger.Logger

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newCleanupWorker(storages *store.Storages, interval time.Duration, logger *logger.Logger) *cleanupWorker {
	return &cleanupWorker{
		quoteCache: storages.QuoteCacheRepository,
		sessions:   storages.SessionRepository,
		rateLimits: storages.RateLimitRepository,
		interval:   interval,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

func (w *cleanupWorker) Run() {
	w.logger.Info().Dur("interval", w.interval).Msg("cleanup worker started")

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.done:
				return
			case <-ticker.C:
				w.sweep()
			}
		}
	}()
}

func (w *cleanupWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		w.logger.Info().Msg("cleanup worker stopped")
	})
}

func (w *cleanupWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	quotes, err := w.quoteCache.CleanupExpired(ctx)
	if err != nil {
		w.logger.Err(err).Msg("error sweeping expired quote cache rows")
	}

	sessions, err := w.sessions.CleanupExpired(ctx)
	if err != nil {
		w.logger.Err(err).Msg("error sweeping expired sessions")
	}

	windows, err := w.rateLimits.CleanupClosed(ctx)
	if err != nil {
		w.logger.Err(err).Msg("error sweeping closed rate-limit windows")
	}

	w.logger.Info().
		Int64("quotes", quotes).
		Int64("sessions", sessions).
		Int64("rate_limit_windows", windows).
		Msg("cleanup sweep finished")
}
