package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/store"
	"github.com/waveswap/waveswap/models"
)

type countingQuoteCache struct {
	cleanups atomic.Int64
}

func (c *countingQuoteCache) GetCachedQuote(ctx context.Context, inputToken, outputToken, inputAmount string) (*models.QuoteCacheEntry, error) {
	return nil, nil
}

func (c *countingQuoteCache) UpsertQuote(ctx context.Context, entry models.QuoteCacheEntry) error {
	return nil
}

func (c *countingQuoteCache) InvalidatePair(ctx context.Context, inputToken, outputToken string) (int64, error) {
	return 0, nil
}

func (c *countingQuoteCache) CleanupExpired(ctx context.Context) (int64, error) {
	return c.cleanups.Add(1), nil
}

type countingSessions struct {
	cleanups atomic.Int64
}

func (c *countingSessions) CreateSession(ctx context.Context, session models.Session) error {
	return nil
}

func (c *countingSessions) GetSession(ctx context.Context, authToken string) (models.Session, error) {
	return models.Session{}, nil
}

func (c *countingSessions) DeleteSession(ctx context.Context, authToken string) error {
	return nil
}

func (c *countingSessions) CleanupExpired(ctx context.Context) (int64, error) {
	return c.cleanups.Add(1), nil
}

type countingRateLimits struct {
	cleanups atomic.Int64
}

func (c *countingRateLimits) IncrementWindow(ctx context.Context, userAddress, endpoint string, windowStart, windowEnd time.Time) (int, error) {
	return 0, nil
}

func (c *countingRateLimits) CleanupClosed(ctx context.Context) (int64, error) {
	return c.cleanups.Add(1), nil
}

func TestCleanupWorker_SweepsAllRepositories(t *testing.T) {
	quotes := &countingQuoteCache{}
	sessions := &countingSessions{}
	rateLimits := &countingRateLimits{}

	storages := &store.Storages{
		QuoteCacheRepository: quotes,
		SessionRepository:    sessions,
		RateLimitRepository:  rateLimits,
	}

	w := newCleanupWorker(storages, 5*time.Millisecond, logger.Nop())
	w.Run()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if quotes.cleanups.Load() > 0 && sessions.cleanups.Load() > 0 && rateLimits.cleanups.Load() > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	w.Stop()

	assert.Positive(t, quotes.cleanups.Load())
	assert.Positive(t, sessions.cleanups.Load())
	assert.Positive(t, rateLimits.cleanups.Load())
}

func TestCleanupWorker_StopIsIdempotent(t *testing.T) {
	storages := &store.Storages{
		QuoteCacheRepository: &countingQuoteCache{},
		SessionRepository:    &countingSessions{},
		RateLimitRepository:  &countingRateLimits{},
	}

	w := newCleanupWorker(storages, time.Hour, logger.Nop())
	w.Run()

	w.Stop()
	w.Stop()
}

func TestCleanupWorker_NoSweepAfterStop(t *testing.T) {
	quotes := &countingQuoteCache{}
	storages := &store.Storages{
		QuoteCacheRepository: quotes,
		SessionRepository:    &countingSessions{},
		RateLimitRepository:  &countingRateLimits{},
	}

	w := newCleanupWorker(storages, 5*time.Millisecond, logger.Nop())
	w.Run()
	w.Stop()

	after := quotes.cleanups.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, quotes.cleanups.Load())
}
