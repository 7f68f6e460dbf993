package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/service"
	"github.com/waveswap/waveswap/models"
)

const (
	testUserAddress = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	testInputToken  = "So11111111111111111111111111111111111111112"
	testOutputToken = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

var errBoom = errors.New("boom")

// ─────────────────────────────────────────────
// Mock services
// ─────────────────────────────────────────────

// Each mock implements its service interface with per-test function fields.
// A nil field means "not expected to be called" and panics loudly.

type mockSwapService struct {
	submitFn    func(ctx context.Context, req models.SwapSubmitRequest) (models.SwapSubmitResponse, error)
	executeFn   func(ctx context.Context, intentID, signedTx string) (models.Swap, error)
	getStatusFn func(ctx context.Context, intentID string) (models.SwapStatusResponse, error)
	cancelFn    func(ctx context.Context, intentID, userAddress string) (models.Swap, error)
	historyFn   func(ctx context.Context, userAddress string, limit, offset int, status *models.SwapStatus) (models.SwapHistoryResponse, error)
}

func (m *mockSwapService) Submit(ctx context.Context, req models.SwapSubmitRequest) (models.SwapSubmitResponse, error) {
	return m.submitFn(ctx, req)
}

func (m *mockSwapService) Execute(ctx context.Context, intentID, signedTx string) (models.Swap, error) {
	return m.executeFn(ctx, intentID, signedTx)
}

func (m *mockSwapService) GetStatus(ctx context.Context, intentID string) (models.SwapStatusResponse, error) {
	return m.getStatusFn(ctx, intentID)
}

func (m *mockSwapService) Cancel(ctx context.Context, intentID, userAddress string) (models.Swap, error) {
	return m.cancelFn(ctx, intentID, userAddress)
}

func (m *mockSwapService) History(ctx context.Context, userAddress string, limit, offset int, status *models.SwapStatus) (models.SwapHistoryResponse, error) {
	return m.historyFn(ctx, userAddress, limit, offset, status)
}

type mockQuoteService struct {
	getQuoteFn        func(ctx context.Context, req models.QuoteRequest) (models.Quote, error)
	invalidateCacheFn func(ctx context.Context, inputToken, outputToken string) (int64, error)
}

func (m *mockQuoteService) GetQuote(ctx context.Context, req models.QuoteRequest) (models.Quote, error) {
	return m.getQuoteFn(ctx, req)
}

func (m *mockQuoteService) InvalidateCache(ctx context.Context, inputToken, outputToken string) (int64, error) {
	return m.invalidateCacheFn(ctx, inputToken, outputToken)
}

type mockAuthService struct {
	createSessionFn func(ctx context.Context, userAddress string) (models.SessionResponse, error)
	validateTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
	revokeSessionFn func(ctx context.Context, tokenString string) error
}

func (m *mockAuthService) CreateSession(ctx context.Context, userAddress string) (models.SessionResponse, error) {
	return m.createSessionFn(ctx, userAddress)
}

func (m *mockAuthService) ValidateToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.validateTokenFn(ctx, tokenString)
}

func (m *mockAuthService) RevokeSession(ctx context.Context, tokenString string) error {
	return m.revokeSessionFn(ctx, tokenString)
}

type mockRateLimitService struct {
	allowFn func(ctx context.Context, userAddress, endpoint string) (bool, error)
}

func (m *mockRateLimitService) Allow(ctx context.Context, userAddress, endpoint string) (bool, error) {
	if m.allowFn == nil {
		return true, nil
	}
	return m.allowFn(ctx, userAddress, endpoint)
}

type mockStakeService struct {
	projectRewardsFn func(ctx context.Context, req models.StakeRewardsRequest) (models.RewardProjection, error)
}

func (m *mockStakeService) ProjectRewards(ctx context.Context, req models.StakeRewardsRequest) (models.RewardProjection, error) {
	return m.projectRewardsFn(ctx, req)
}

type mockTokenService struct {
	listTokensFn  func(ctx context.Context) ([]models.TokenMetadata, error)
	getTokenFn    func(ctx context.Context, mint string) (models.TokenMetadata, error)
	upsertTokenFn func(ctx context.Context, token models.TokenMetadata) error
}

func (m *mockTokenService) ListTokens(ctx context.Context) ([]models.TokenMetadata, error) {
	return m.listTokensFn(ctx)
}

func (m *mockTokenService) GetToken(ctx context.Context, mint string) (models.TokenMetadata, error) {
	return m.getTokenFn(ctx, mint)
}

func (m *mockTokenService) UpsertToken(ctx context.Context, token models.TokenMetadata) error {
	return m.upsertTokenFn(ctx, token)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler with permissive defaults: an allow-all
// rate limiter, a healthy pinger, and a no-op websocket handler. Tests set
// the service mocks they exercise.
func newTestHandler(svcs *service.Services) *Handler {
	if svcs.RateLimitService == nil {
		svcs.RateLimitService = &mockRateLimitService{}
	}
	return NewHandler(svcs, &mockPinger{}, func(http.ResponseWriter, *http.Request) {}, logger.Nop())
}
