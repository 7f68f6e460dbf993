package store

import (
	"github.com/waveswap/waveswap/internal/logger"
)

// Storages aggregates all repositories over a single database connection.
type Storages struct {
	UserRepository          UserRepository
	SwapRepository          SwapRepository
	QuoteCacheRepository    QuoteCacheRepository
	SessionRepository       SessionRepository
	TokenMetadataRepository TokenMetadataRepository
	RateLimitRepository     RateLimitRepository
}

// NewStorages wires every repository to the shared DB handle and logger.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:          NewUserRepository(db, logger),
		SwapRepository:          NewSwapRepository(db, logger),
		QuoteCacheRepository:    NewQuoteCacheRepository(db, logger),
		SessionRepository:       NewSessionRepository(db, logger),
		TokenMetadataRepository: NewTokenMetadataRepository(db, logger),
		RateLimitRepository:     NewRateLimitRepository(db, logger),
	}
}
