package service

import (
	"context"

	"github.com/waveswap/waveswap/models"
)

// SwapService records swap intents and drives them to a terminal status.
type SwapService interface {
	// Submit validates and records a new swap intent. The returned status is
	// always ENCRYPTED_PENDING; privacy and cross-chain swaps continue
	// asynchronously, public same-chain swaps return an unsigned transaction
	// for the wallet to sign.
	Submit(ctx context.Context, req models.SwapSubmitRequest) (models.SwapSubmitResponse, error)

	// Execute relays a client-signed transaction and settles the swap.
	Execute(ctx context.Context, intentID, signedTx string) (models.Swap, error)

	// GetStatus returns the swap row plus its ordered stages.
	GetStatus(ctx context.Context, intentID string) (models.SwapStatusResponse, error)

	// Cancel moves a pending swap to CANCELLED. Only the owning wallet may
	// cancel, and only while the swap is still pending.
	Cancel(ctx context.Context, intentID, userAddress string) (models.Swap, error)

	// History lists the wallet's swaps, newest first.
	History(ctx context.Context, userAddress string, limit, offset int, status *models.SwapStatus) (models.SwapHistoryResponse, error)
}

// QuoteService prices token pairs through the upstream provider with a
// short-TTL cache in front.
type QuoteService interface {
	GetQuote(ctx context.Context, req models.QuoteRequest) (models.Quote, error)
	InvalidateCache(ctx context.Context, inputToken, outputToken string) (int64, error)
}

// AuthService issues and validates wallet session tokens.
type AuthService interface {
	CreateSession(ctx context.Context, userAddress string) (models.SessionResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (models.Token, error)
	RevokeSession(ctx context.Context, tokenString string) error
}

// RateLimitService enforces fixed-window request ceilings per
// (wallet, endpoint) pair.
type RateLimitService interface {
	// Allow records one request in the current window and reports whether it
	// is within the configured ceiling.
	Allow(ctx context.Context, userAddress, endpoint string) (bool, error)
}

// StakeService projects staking reward accrual for on-chain positions.
type StakeService interface {
	ProjectRewards(ctx context.Context, req models.StakeRewardsRequest) (models.RewardProjection, error)
}

// TokenService serves static token reference data.
type TokenService interface {
	ListTokens(ctx context.Context) ([]models.TokenMetadata, error)
	GetToken(ctx context.Context, mint string) (models.TokenMetadata, error)
	UpsertToken(ctx context.Context, token models.TokenMetadata) error
}

// StatusNotifier pushes swap status changes to interested subscribers. The
// WebSocket hub implements it; tests substitute a spy.
type StatusNotifier interface {
	BroadcastSwapStatus(intentID string, status models.SwapStatus, extra models.StatusExtra)
}
