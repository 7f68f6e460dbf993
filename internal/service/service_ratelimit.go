package service

import (
	"context"
	"fmt"
	"time"

	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/store"
)

// rateLimitService enforces fixed-window ceilings: time is cut into aligned
// windows of the configured length and each (wallet, endpoint) pair gets
// exactly maxRequests per window. The counter bump is a single atomic upsert,
// so concurrent requests cannot both sneak under the ceiling.
type rateLimitService struct {
	rateLimitRepository store.RateLimitRepository

	window      time.Duration
	maxRequests int

	logger *logger.Logger
}

// NewRateLimitService constructs a RateLimitService with the window
// parameters from cfg.
func NewRateLimitService(rateLimitRepository store.RateLimitRepository, cfg config.RateLimit, logger *logger.Logger) RateLimitService {
	return &rateLimitService{
		rateLimitRepository: rateLimitRepository,
		window:              cfg.Window,
		maxRequests:         cfg.MaxRequests,
		logger:              logger,
	}
}

// Allow counts the request against the current window and reports whether it
// stays within the ceiling. userAddress may be empty for anonymous callers;
// they share one anonymous bucket per endpoint.
func (r *rateLimitService) Allow(ctx context.Context, userAddress, endpoint string) (bool, error) {
	windowStart := time.Now().Truncate(r.window)
	windowEnd := windowStart.Add(r.window)

	count, err := r.rateLimitRepository.IncrementWindow(ctx, userAddress, endpoint, windowStart, windowEnd)
	if err != nil {
		return false, fmt.Errorf("incrementing rate-limit window failed: %w", err)
	}

	return count <= r.maxRequests, nil
}
