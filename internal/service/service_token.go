package service

import (
	"context"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/store"
	"github.com/waveswap/waveswap/models"
)

// tokenService serves static per-mint reference data. Thin by design: the
// repository is the whole story, there is no caching layer beyond Postgres.
type tokenService struct {
	tokenRepository store.TokenMetadataRepository
	logger          *logger.Logger
}

// NewTokenService constructs a TokenService.
func NewTokenService(tokenRepository store.TokenMetadataRepository, logger *logger.Logger) TokenService {
	return &tokenService{tokenRepository: tokenRepository, logger: logger}
}

func (t *tokenService) ListTokens(ctx context.Context) ([]models.TokenMetadata, error) {
	return t.tokenRepository.ListTokens(ctx)
}

func (t *tokenService) GetToken(ctx context.Context, mint string) (models.TokenMetadata, error) {
	if err := validateAddress(mint); err != nil {
		return models.TokenMetadata{}, err
	}
	return t.tokenRepository.GetToken(ctx, mint)
}

func (t *tokenService) UpsertToken(ctx context.Context, token models.TokenMetadata) error {
	if err := validateAddress(token.Mint); err != nil {
		return err
	}
	if token.Symbol == "" || token.Decimals < 0 {
		return ErrInvalidDataProvided
	}
	return t.tokenRepository.UpsertToken(ctx, token)
}
