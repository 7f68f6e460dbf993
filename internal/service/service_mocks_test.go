package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/waveswap/waveswap/internal/adapter"
	"github.com/waveswap/waveswap/models"
)

// Well-known valid base58 32-byte addresses used across the service tests.
const (
	testUserAddress = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	testInputToken  = "So11111111111111111111111111111111111111112"
	testOutputToken = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.SwapRepository
// ─────────────────────────────────────────────

type mockSwapRepository struct {
	createFn     func(ctx context.Context, intentID string, params models.CreateSwapParams) (models.Swap, error)
	getFn        func(ctx context.Context, intentID string) (models.Swap, error)
	transitionFn func(ctx context.Context, intentID string, newStatus models.SwapStatus, extra models.StatusExtra) (models.Swap, error)
	addStageFn   func(ctx context.Context, swapID, name, status string) (models.SwapStage, error)
	listStagesFn func(ctx context.Context, swapID string) ([]models.SwapStage, error)
	listByUserFn func(ctx context.Context, userAddress string, limit, offset int, status *models.SwapStatus) ([]models.Swap, error)

	mu     sync.Mutex
	stages []string
}

func (m *mockSwapRepository) CreateSwap(ctx context.Context, intentID string, params models.CreateSwapParams) (models.Swap, error) {
	if m.createFn != nil {
		return m.createFn(ctx, intentID, params)
	}
	return models.Swap{
		ID:          params.ID,
		IntentID:    intentID,
		UserAddress: params.UserAddress,
		InputToken:  params.InputToken,
		OutputToken: params.OutputToken,
		InputAmount: params.InputAmount,
		FeeBps:      params.FeeBps,
		SlippageBps: params.SlippageBps,
		PrivacyMode: params.PrivacyMode,
		RouteID:     params.RouteID,
		Status:      models.StatusEncryptedPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

func (m *mockSwapRepository) GetSwapByIntentID(ctx context.Context, intentID string) (models.Swap, error) {
	if m.getFn != nil {
		return m.getFn(ctx, intentID)
	}
	return models.Swap{}, nil
}

func (m *mockSwapRepository) TransitionStatus(ctx context.Context, intentID string, newStatus models.SwapStatus, extra models.StatusExtra) (models.Swap, error) {
	if m.transitionFn != nil {
		return m.transitionFn(ctx, intentID, newStatus, extra)
	}
	return models.Swap{IntentID: intentID, Status: newStatus}, nil
}

func (m *mockSwapRepository) AddStage(ctx context.Context, swapID, name, status string) (models.SwapStage, error) {
	m.mu.Lock()
	m.stages = append(m.stages, name)
	m.mu.Unlock()

	if m.addStageFn != nil {
		return m.addStageFn(ctx, swapID, name, status)
	}
	return models.SwapStage{SwapID: swapID, Name: name, Status: status}, nil
}

func (m *mockSwapRepository) ListStages(ctx context.Context, swapID string) ([]models.SwapStage, error) {
	if m.listStagesFn != nil {
		return m.listStagesFn(ctx, swapID)
	}
	return nil, nil
}

func (m *mockSwapRepository) ListSwapsByUser(ctx context.Context, userAddress string, limit, offset int, status *models.SwapStatus) ([]models.Swap, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userAddress, limit, offset, status)
	}
	return nil, nil
}

// recordedStages returns a copy of the stage names appended so far.
func (m *mockSwapRepository) recordedStages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.stages))
	copy(out, m.stages)
	return out
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	upsertFn func(ctx context.Context, address string) (models.User, error)
}

func (m *mockUserRepository) UpsertUser(ctx context.Context, address string) (models.User, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, address)
	}
	return models.User{Address: address}, nil
}

// ─────────────────────────────────────────────
// Mock: store.QuoteCacheRepository
// ─────────────────────────────────────────────

type mockQuoteCacheRepository struct {
	getFn        func(ctx context.Context, inputToken, outputToken, inputAmount string) (*models.QuoteCacheEntry, error)
	upsertFn     func(ctx context.Context, entry models.QuoteCacheEntry) error
	invalidateFn func(ctx context.Context, inputToken, outputToken string) (int64, error)
	cleanupFn    func(ctx context.Context) (int64, error)
}

func (m *mockQuoteCacheRepository) GetCachedQuote(ctx context.Context, inputToken, outputToken, inputAmount string) (*models.QuoteCacheEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, inputToken, outputToken, inputAmount)
	}
	return nil, nil
}

func (m *mockQuoteCacheRepository) UpsertQuote(ctx context.Context, entry models.QuoteCacheEntry) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, entry)
	}
	return nil
}

func (m *mockQuoteCacheRepository) InvalidatePair(ctx context.Context, inputToken, outputToken string) (int64, error) {
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx, inputToken, outputToken)
	}
	return 0, nil
}

func (m *mockQuoteCacheRepository) CleanupExpired(ctx context.Context) (int64, error) {
	if m.cleanupFn != nil {
		return m.cleanupFn(ctx)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.SessionRepository
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	createFn  func(ctx context.Context, session models.Session) error
	getFn     func(ctx context.Context, authToken string) (models.Session, error)
	deleteFn  func(ctx context.Context, authToken string) error
	cleanupFn func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) GetSession(ctx context.Context, authToken string) (models.Session, error) {
	if m.getFn != nil {
		return m.getFn(ctx, authToken)
	}
	return models.Session{}, nil
}

func (m *mockSessionRepository) DeleteSession(ctx context.Context, authToken string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, authToken)
	}
	return nil
}

func (m *mockSessionRepository) CleanupExpired(ctx context.Context) (int64, error) {
	if m.cleanupFn != nil {
		return m.cleanupFn(ctx)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.RateLimitRepository
// ─────────────────────────────────────────────

type mockRateLimitRepository struct {
	incrementFn func(ctx context.Context, userAddress, endpoint string, windowStart, windowEnd time.Time) (int, error)
	cleanupFn   func(ctx context.Context) (int64, error)
}

func (m *mockRateLimitRepository) IncrementWindow(ctx context.Context, userAddress, endpoint string, windowStart, windowEnd time.Time) (int, error) {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, userAddress, endpoint, windowStart, windowEnd)
	}
	return 1, nil
}

func (m *mockRateLimitRepository) CleanupClosed(ctx context.Context) (int64, error) {
	if m.cleanupFn != nil {
		return m.cleanupFn(ctx)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mocks: adapter interfaces
// ─────────────────────────────────────────────

type mockQuoteProvider struct {
	quoteFn func(ctx context.Context, inputMint, outputMint, inputAmount string, slippageBps int) (adapter.QuoteResult, error)
	buildFn func(ctx context.Context, routeID, userAddress string) (string, error)
}

func (m *mockQuoteProvider) Quote(ctx context.Context, inputMint, outputMint, inputAmount string, slippageBps int) (adapter.QuoteResult, error) {
	if m.quoteFn != nil {
		return m.quoteFn(ctx, inputMint, outputMint, inputAmount, slippageBps)
	}
	return adapter.QuoteResult{OutAmount: "1000", RouteID: "route-1"}, nil
}

func (m *mockQuoteProvider) BuildSwapTransaction(ctx context.Context, routeID, userAddress string) (string, error) {
	if m.buildFn != nil {
		return m.buildFn(ctx, routeID, userAddress)
	}
	return "unsigned-tx==", nil
}

type mockConfidentialService struct {
	depositFn func(ctx context.Context, userAddress, mint, amount string) (adapter.DepositReceipt, error)
	executeFn func(ctx context.Context, depositID, routeID string) (adapter.ExecutionResult, error)
}

func (m *mockConfidentialService) Deposit(ctx context.Context, userAddress, mint, amount string) (adapter.DepositReceipt, error) {
	if m.depositFn != nil {
		return m.depositFn(ctx, userAddress, mint, amount)
	}
	return adapter.DepositReceipt{DepositID: "deposit-1", Confirmed: true}, nil
}

func (m *mockConfidentialService) Execute(ctx context.Context, depositID, routeID string) (adapter.ExecutionResult, error) {
	if m.executeFn != nil {
		return m.executeFn(ctx, depositID, routeID)
	}
	return adapter.ExecutionResult{TxHash: "sig-1", OutAmount: "995"}, nil
}

type mockIntentsRelay struct {
	publishFn    func(ctx context.Context, intent adapter.CrossChainIntent) (string, error)
	settlementFn func(ctx context.Context, relayID string) (adapter.SettlementStatus, error)
}

func (m *mockIntentsRelay) PublishIntent(ctx context.Context, intent adapter.CrossChainIntent) (string, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, intent)
	}
	return "relay-1", nil
}

func (m *mockIntentsRelay) GetSettlement(ctx context.Context, relayID string) (adapter.SettlementStatus, error) {
	if m.settlementFn != nil {
		return m.settlementFn(ctx, relayID)
	}
	return adapter.SettlementStatus{Status: models.StatusEncryptedPending}, nil
}

type mockSolanaRPC struct {
	blockhashFn func(ctx context.Context) (string, error)
	sendFn      func(ctx context.Context, serializedTx string) (string, error)
}

func (m *mockSolanaRPC) GetLatestBlockhash(ctx context.Context) (string, error) {
	if m.blockhashFn != nil {
		return m.blockhashFn(ctx)
	}
	return "blockhash-1", nil
}

func (m *mockSolanaRPC) SendRawTransaction(ctx context.Context, serializedTx string) (string, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, serializedTx)
	}
	return "sig-1", nil
}

// ─────────────────────────────────────────────
// Spy: StatusNotifier
// ─────────────────────────────────────────────

type broadcastEvent struct {
	intentID string
	status   models.SwapStatus
	extra    models.StatusExtra
}

type spyNotifier struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (s *spyNotifier) BroadcastSwapStatus(intentID string, status models.SwapStatus, extra models.StatusExtra) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, broadcastEvent{intentID: intentID, status: status, extra: extra})
}

func (s *spyNotifier) recorded() []broadcastEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]broadcastEvent, len(s.events))
	copy(out, s.events)
	return out
}
