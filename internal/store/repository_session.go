package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository].
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session row.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createSession, session.AuthToken, session.UserAddress, session.ValidUntil)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: insert failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// GetSession returns the session for authToken if it exists and has not
// expired; [ErrSessionNotFound] otherwise. An expired row and a deleted row
// are indistinguishable to callers, which is what makes deletion work as
// revocation.
func (r *sessionRepository) GetSession(ctx context.Context, authToken string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, getSession, authToken)

	err := row.Scan(&session.AuthToken, &session.UserAddress, &session.ValidUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.GetSession").Msg("error: query or scan failed")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return session, nil
}

// DeleteSession revokes the session row for authToken. Deleting an absent
// row is not an error.
func (r *sessionRepository) DeleteSession(ctx context.Context, authToken string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSession, authToken); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// CleanupExpired deletes exactly the rows whose valid_until lies strictly in
// the past at call time.
func (r *sessionRepository) CleanupExpired(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, cleanupExpiredSessions)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CleanupExpired").Msg("error: delete failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return res.RowsAffected()
}
