package store

import (
	"context"
	"fmt"
	"time"

	"github.com/waveswap/waveswap/internal/logger"
)

// rateLimitRepository is the PostgreSQL-backed implementation of
// [RateLimitRepository]. The increment is a single atomic upsert, so
// concurrent requests in the same window never lose counts.
type rateLimitRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRateLimitRepository constructs a [RateLimitRepository] backed by the
// provided database connection and logger.
func NewRateLimitRepository(db *DB, logger *logger.Logger) RateLimitRepository {
	logger.Debug().Msg("creating rate limit repository")
	return &rateLimitRepository{
		db:     db,
		logger: logger,
	}
}

// IncrementWindow bumps the (userAddress, endpoint) counter for the window
// starting at windowStart and returns the count after the increment.
func (r *rateLimitRepository) IncrementWindow(ctx context.Context, userAddress, endpoint string, windowStart, windowEnd time.Time) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	row := r.db.QueryRowContext(ctx, incrementRateLimitWindow, userAddress, endpoint, windowStart, windowEnd)
	if err := row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*rateLimitRepository.IncrementWindow").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: upsert failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return count, nil
}

// CleanupClosed deletes exactly the windows whose window_end lies strictly
// in the past at call time.
func (r *rateLimitRepository) CleanupClosed(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, cleanupClosedRateLimitWindows)
	if err != nil {
		log.Err(err).Str("func", "*rateLimitRepository.CleanupClosed").Msg("error: delete failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return res.RowsAffected()
}
