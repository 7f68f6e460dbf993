package service

import (
	"github.com/waveswap/waveswap/internal/adapter"
	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/store"
)

type Services struct {
	SwapService      SwapService
	QuoteService     QuoteService
	AuthService      AuthService
	RateLimitService RateLimitService
	StakeService     StakeService
	TokenService     TokenService
}

func NewServices(storages *store.Storages, adapters *adapter.Adapters, cfg *config.StructuredConfig, notifier StatusNotifier, logger *logger.Logger) *Services {
	return &Services{
		SwapService:      NewSwapService(storages, adapters, cfg.App, notifier, logger),
		QuoteService:     NewQuoteService(storages.QuoteCacheRepository, adapters.QuoteProvider, cfg.App, logger),
		AuthService:      NewAuthService(storages.SessionRepository, storages.UserRepository, cfg.App, logger),
		RateLimitService: NewRateLimitService(storages.RateLimitRepository, cfg.RateLimit, logger),
		StakeService:     NewStakeService(logger),
		TokenService:     NewTokenService(storages.TokenMetadataRepository, logger),
	}
}
