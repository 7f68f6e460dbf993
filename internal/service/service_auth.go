package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/store"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

// authService is the concrete implementation of AuthService. Sessions are
// HS256 JWT bearer tokens whose jti claim doubles as the session row key:
// validation checks the signature and the row, so deleting the row revokes
// the token before its exp claim fires.
type authService struct {
	sessionRepository store.SessionRepository
	userRepository    store.UserRepository

	uuid *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify session JWTs.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT. Tokens
	// whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued session remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the session and user
// repositories and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(sessionRepository store.SessionRepository, userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		sessionRepository: sessionRepository,
		userRepository:    userRepository,
		uuid:              utils.NewUUIDGenerator(),
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		logger:            logger,
	}
}

// CreateSession issues a signed session token for the wallet and records the
// backing session row. The user row is upserted so a session is a valid
// first interaction.
func (a *authService) CreateSession(ctx context.Context, userAddress string) (models.SessionResponse, error) {
	log := logger.FromContext(ctx)

	if err := validateAddress(userAddress); err != nil {
		return models.SessionResponse{}, err
	}

	if _, err := a.userRepository.UpsertUser(ctx, userAddress); err != nil {
		return models.SessionResponse{}, fmt.Errorf("upserting user failed: %w", err)
	}

	sessionID := a.uuid.Generate()
	token, err := utils.GenerateJWTToken(a.tokenIssuer, userAddress, sessionID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Msg("session token generation failed")
		return models.SessionResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	validUntil := time.Now().Add(a.tokenDuration)
	if err = a.sessionRepository.CreateSession(ctx, models.Session{
		AuthToken:   sessionID,
		UserAddress: userAddress,
		ValidUntil:  validUntil,
	}); err != nil {
		return models.SessionResponse{}, fmt.Errorf("recording session failed: %w", err)
	}

	return models.SessionResponse{
		Token:      token.SignedString,
		ValidUntil: validUntil,
	}, nil
}

// ValidateToken verifies the token signature, issuer, and expiry, then checks
// the session row still exists. Any failure is normalised to
// ErrTokenIsExpiredOrInvalid so callers do not inspect low-level JWT errors.
func (a *authService) ValidateToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	session, err := a.sessionRepository.GetSession(ctx, token.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Token{}, ErrTokenIsExpiredOrInvalid
		}
		return models.Token{}, fmt.Errorf("session lookup failed: %w", err)
	}
	if session.UserAddress != token.UserAddress {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// RevokeSession deletes the session row behind the token, invalidating it
// immediately regardless of its exp claim.
func (a *authService) RevokeSession(ctx context.Context, tokenString string) error {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return ErrTokenIsExpiredOrInvalid
	}

	if err = a.sessionRepository.DeleteSession(ctx, token.SessionID); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return ErrTokenIsExpiredOrInvalid
		}
		return fmt.Errorf("deleting session failed: %w", err)
	}

	return nil
}
