package store

import (
	"context"
	"time"

	"github.com/waveswap/waveswap/models"
)

// UserRepository persists wallet users. Users are created implicitly: the
// upsert is keyed by address and idempotent.
type UserRepository interface {
	UpsertUser(ctx context.Context, address string) (models.User, error)
}

// SwapRepository persists swap lifecycle records and their stages.
//
// TransitionStatus and CancelSwap enforce the status machine at the data
// layer with conditional updates keyed on the expected current state, so two
// racing transitions for the same intent id cannot both succeed.
type SwapRepository interface {
	CreateSwap(ctx context.Context, intentID string, params models.CreateSwapParams) (models.Swap, error)
	GetSwapByIntentID(ctx context.Context, intentID string) (models.Swap, error)
	TransitionStatus(ctx context.Context, intentID string, newStatus models.SwapStatus, extra models.StatusExtra) (models.Swap, error)
	AddStage(ctx context.Context, swapID, name, status string) (models.SwapStage, error)
	ListStages(ctx context.Context, swapID string) ([]models.SwapStage, error)
	ListSwapsByUser(ctx context.Context, userAddress string, limit, offset int, status *models.SwapStatus) ([]models.Swap, error)
}

// QuoteCacheRepository memoizes upstream pricing results keyed by the exact
// (input token, output token, input amount) triple.
type QuoteCacheRepository interface {
	// GetCachedQuote returns the entry for the exact triple with
	// expires_at > now, or nil when there is no live entry. A miss is not
	// an error.
	GetCachedQuote(ctx context.Context, inputToken, outputToken, inputAmount string) (*models.QuoteCacheEntry, error)
	UpsertQuote(ctx context.Context, entry models.QuoteCacheEntry) error
	InvalidatePair(ctx context.Context, inputToken, outputToken string) (int64, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

// SessionRepository persists bearer-token sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, authToken string) (models.Session, error)
	DeleteSession(ctx context.Context, authToken string) error
	CleanupExpired(ctx context.Context) (int64, error)
}

// TokenMetadataRepository persists static per-mint reference data.
type TokenMetadataRepository interface {
	UpsertToken(ctx context.Context, token models.TokenMetadata) error
	GetToken(ctx context.Context, mint string) (models.TokenMetadata, error)
	ListTokens(ctx context.Context) ([]models.TokenMetadata, error)
}

// RateLimitRepository maintains fixed-window request counters.
type RateLimitRepository interface {
	// IncrementWindow bumps the counter for (userAddress, endpoint) in the
	// window starting at windowStart and returns the new count.
	IncrementWindow(ctx context.Context, userAddress, endpoint string, windowStart, windowEnd time.Time) (int, error)
	CleanupClosed(ctx context.Context) (int64, error)
}
