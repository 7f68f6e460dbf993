package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/models"
)

// tokenMetadataRepository is the PostgreSQL-backed implementation of
// [TokenMetadataRepository]. Rows are written by seed/admin paths and are
// read-heavy afterwards.
type tokenMetadataRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenMetadataRepository constructs a [TokenMetadataRepository] backed by
// the provided database connection and logger.
func NewTokenMetadataRepository(db *DB, logger *logger.Logger) TokenMetadataRepository {
	logger.Debug().Msg("creating token metadata repository")
	return &tokenMetadataRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertToken inserts or refreshes the metadata row for the mint.
func (r *tokenMetadataRepository) UpsertToken(ctx context.Context, token models.TokenMetadata) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, upsertTokenMetadata,
		token.Mint, token.Symbol, token.Name, token.Decimals, token.LogoURI, token.IsVerified)
	if err != nil {
		log.Err(err).Str("func", "*tokenMetadataRepository.UpsertToken").Msg("error: upsert failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// GetToken returns the metadata for mint or [ErrTokenMetadataNotFound].
func (r *tokenMetadataRepository) GetToken(ctx context.Context, mint string) (models.TokenMetadata, error) {
	log := logger.FromContext(ctx)

	var token models.TokenMetadata
	row := r.db.QueryRowContext(ctx, getTokenMetadata, mint)

	err := row.Scan(&token.Mint, &token.Symbol, &token.Name, &token.Decimals, &token.LogoURI, &token.IsVerified)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TokenMetadata{}, ErrTokenMetadataNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*tokenMetadataRepository.GetToken").Msg("error: query or scan failed")
		return models.TokenMetadata{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return token, nil
}

// ListTokens returns all metadata rows ordered by symbol.
func (r *tokenMetadataRepository) ListTokens(ctx context.Context) ([]models.TokenMetadata, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listTokenMetadata)
	if err != nil {
		log.Err(err).Str("func", "*tokenMetadataRepository.ListTokens").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	tokens := make([]models.TokenMetadata, 0, 32)
	for rows.Next() {
		var token models.TokenMetadata
		if err := rows.Scan(&token.Mint, &token.Symbol, &token.Name, &token.Decimals, &token.LogoURI, &token.IsVerified); err != nil {
			log.Err(err).Str("func", "*tokenMetadataRepository.ListTokens").Msg("error: scanning error")
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tokens, nil
}
