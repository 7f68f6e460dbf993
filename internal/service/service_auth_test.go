package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/store"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

func newTestAuthService(sessions *mockSessionRepository, users *mockUserRepository) *authService {
	return &authService{
		sessionRepository: sessions,
		userRepository:    users,
		uuid:              utils.NewUUIDGenerator(),
		tokenSignKey:      "test-sign-key",
		tokenIssuer:       "waveswap",
		tokenDuration:     time.Hour,
		logger:            logger.Nop(),
	}
}

func TestAuthService_CreateSession_Success(t *testing.T) {
	var storedSession models.Session
	sessions := &mockSessionRepository{
		createFn: func(ctx context.Context, session models.Session) error {
			storedSession = session
			return nil
		},
	}
	var upsertedAddress string
	users := &mockUserRepository{
		upsertFn: func(ctx context.Context, address string) (models.User, error) {
			upsertedAddress = address
			return models.User{Address: address}, nil
		},
	}

	resp, err := newTestAuthService(sessions, users).CreateSession(context.Background(), testUserAddress)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ValidUntil, time.Second)

	assert.Equal(t, testUserAddress, upsertedAddress)
	assert.Equal(t, testUserAddress, storedSession.UserAddress)
	assert.NotEmpty(t, storedSession.AuthToken)

	// The jti claim must equal the session row key.
	parsed, err := utils.ValidateAndParseJWTToken(resp.Token, "test-sign-key", "waveswap")
	require.NoError(t, err)
	assert.Equal(t, storedSession.AuthToken, parsed.SessionID)
	assert.Equal(t, testUserAddress, parsed.UserAddress)
}

func TestAuthService_CreateSession_InvalidAddress(t *testing.T) {
	_, err := newTestAuthService(&mockSessionRepository{}, &mockUserRepository{}).
		CreateSession(context.Background(), "not-a-wallet")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAuthService_ValidateToken_Success(t *testing.T) {
	var sessionKey string
	sessions := &mockSessionRepository{
		createFn: func(ctx context.Context, session models.Session) error {
			sessionKey = session.AuthToken
			return nil
		},
		getFn: func(ctx context.Context, authToken string) (models.Session, error) {
			require.Equal(t, sessionKey, authToken)
			return models.Session{AuthToken: authToken, UserAddress: testUserAddress}, nil
		},
	}

	svc := newTestAuthService(sessions, &mockUserRepository{})
	resp, err := svc.CreateSession(context.Background(), testUserAddress)
	require.NoError(t, err)

	token, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, testUserAddress, token.UserAddress)
}

func TestAuthService_ValidateToken_RevokedSession(t *testing.T) {
	sessions := &mockSessionRepository{
		getFn: func(ctx context.Context, authToken string) (models.Session, error) {
			return models.Session{}, store.ErrSessionNotFound
		},
	}

	svc := newTestAuthService(sessions, &mockUserRepository{})
	resp, err := svc.CreateSession(context.Background(), testUserAddress)
	require.NoError(t, err)

	// The JWT itself is still valid, but the row is gone: revoked.
	_, err = svc.ValidateToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := newTestAuthService(&mockSessionRepository{}, &mockUserRepository{})

	_, err := svc.ValidateToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ValidateToken_AddressMismatch(t *testing.T) {
	sessions := &mockSessionRepository{
		getFn: func(ctx context.Context, authToken string) (models.Session, error) {
			return models.Session{AuthToken: authToken, UserAddress: testOutputToken}, nil
		},
	}

	svc := newTestAuthService(sessions, &mockUserRepository{})
	resp, err := svc.CreateSession(context.Background(), testUserAddress)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_RevokeSession(t *testing.T) {
	deleted := ""
	sessions := &mockSessionRepository{
		deleteFn: func(ctx context.Context, authToken string) error {
			deleted = authToken
			return nil
		},
	}

	svc := newTestAuthService(sessions, &mockUserRepository{})
	resp, err := svc.CreateSession(context.Background(), testUserAddress)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeSession(context.Background(), resp.Token))
	assert.NotEmpty(t, deleted)
}
