package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/models"
)

// quoteCacheRepository is the PostgreSQL-backed implementation of
// [QuoteCacheRepository]. The cache is not authoritative: a miss simply
// makes the service re-fetch from the upstream quote provider.
type quoteCacheRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewQuoteCacheRepository constructs a [QuoteCacheRepository] backed by the
// provided database connection and logger.
func NewQuoteCacheRepository(db *DB, logger *logger.Logger) QuoteCacheRepository {
	logger.Debug().Msg("creating quote cache repository")
	return &quoteCacheRepository{
		db:     db,
		logger: logger,
	}
}

// GetCachedQuote returns the live entry for the exact triple, or nil when no
// row exists with expires_at > now. A miss returns (nil, nil).
func (r *quoteCacheRepository) GetCachedQuote(ctx context.Context, inputToken, outputToken, inputAmount string) (*models.QuoteCacheEntry, error) {
	log := logger.FromContext(ctx)

	var entry models.QuoteCacheEntry
	row := r.db.QueryRowContext(ctx, getCachedQuote, inputToken, outputToken, inputAmount)

	err := row.Scan(
		&entry.ID, &entry.InputToken, &entry.OutputToken, &entry.InputAmount,
		&entry.OutputAmount, &entry.RouteID, &entry.PriceImpactBps, &entry.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*quoteCacheRepository.GetCachedQuote").Msg("error: query or scan failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return &entry, nil
}

// UpsertQuote stores or refreshes the entry for its triple.
func (r *quoteCacheRepository) UpsertQuote(ctx context.Context, entry models.QuoteCacheEntry) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, upsertCachedQuote,
		entry.InputToken, entry.OutputToken, entry.InputAmount,
		entry.OutputAmount, entry.RouteID, entry.PriceImpactBps, entry.ExpiresAt,
	)
	if err != nil {
		log.Err(err).Str("func", "*quoteCacheRepository.UpsertQuote").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: upsert failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// InvalidatePair deletes all cached quotes for the exact token pair and
// returns the number of rows removed.
func (r *quoteCacheRepository) InvalidatePair(ctx context.Context, inputToken, outputToken string) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, invalidateQuotePair, inputToken, outputToken)
	if err != nil {
		log.Err(err).Str("func", "*quoteCacheRepository.InvalidatePair").Msg("error: delete failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return res.RowsAffected()
}

// CleanupExpired deletes exactly the rows whose expires_at lies strictly in
// the past at call time.
func (r *quoteCacheRepository) CleanupExpired(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, cleanupExpiredQuotes)
	if err != nil {
		log.Err(err).Str("func", "*quoteCacheRepository.CleanupExpired").Msg("error: delete failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return res.RowsAffected()
}
