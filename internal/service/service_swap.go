package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/waveswap/waveswap/internal/adapter"
	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/store"
	"github.com/waveswap/waveswap/internal/utils"
	"github.com/waveswap/waveswap/models"
)

const (
	// defaultHistoryLimit and maxHistoryLimit bound the history page size.
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100

	// executionTimeout bounds the asynchronous confidential and cross-chain
	// pipelines; a pipeline that outlives it marks the swap FAILED.
	executionTimeout = 2 * time.Minute

	// settlementPollInterval is how often the cross-chain pipeline asks the
	// relay for the intent's settlement status.
	settlementPollInterval = 3 * time.Second

	// terminalWriteTimeout bounds the terminal status write, which must go
	// through even when the pipeline context has already expired.
	terminalWriteTimeout = 10 * time.Second

	// homeChain is the chain the backend executes on. A dest_chain equal to
	// it (or empty) means a same-chain swap.
	homeChain = "solana"
)

// swapService is the concrete implementation of SwapService: the lifecycle
// recorder plus the three execution pipelines (confidential, cross-chain,
// client-signed) that drive a pending swap to its terminal status.
type swapService struct {
	swapRepository store.SwapRepository
	userRepository store.UserRepository

	quotes       adapter.QuoteProvider
	confidential adapter.ConfidentialService
	relay        adapter.IntentsRelay
	chain        adapter.SolanaRPC

	notifier StatusNotifier
	uuid     *utils.UUIDGenerator

	// privacyFeeBps is the service fee charged on privacy-mode swaps. Public
	// swaps carry no fee.
	privacyFeeBps int

	pollInterval time.Duration
	execTimeout  time.Duration

	logger *logger.Logger
}

// NewSwapService constructs a SwapService over the given repositories,
// upstream adapters, and status notifier.
func NewSwapService(storages *store.Storages, adapters *adapter.Adapters, cfg config.App, notifier StatusNotifier, logger *logger.Logger) SwapService {
	return &swapService{
		swapRepository: storages.SwapRepository,
		userRepository: storages.UserRepository,
		quotes:         adapters.QuoteProvider,
		confidential:   adapters.ConfidentialService,
		relay:          adapters.IntentsRelay,
		chain:          adapters.SolanaRPC,
		notifier:       notifier,
		uuid:           utils.NewUUIDGenerator(),
		privacyFeeBps:  cfg.PrivacyFeeBps,
		pollInterval:   settlementPollInterval,
		execTimeout:    executionTimeout,
		logger:         logger,
	}
}

// Submit validates the request, prices it, records the swap with status
// ENCRYPTED_PENDING and an initial swap_initiated stage, and kicks off the
// pipeline matching the swap kind. Upstream calls happen before the row is
// written so a pricing failure leaves no state behind.
func (s *swapService) Submit(ctx context.Context, req models.SwapSubmitRequest) (models.SwapSubmitResponse, error) {
	log := logger.FromContext(ctx)

	if err := validateAddress(req.UserAddress); err != nil {
		return models.SwapSubmitResponse{}, fmt.Errorf("%w: user_address", err)
	}
	if err := validateAddress(req.InputToken); err != nil {
		return models.SwapSubmitResponse{}, fmt.Errorf("%w: input_token", err)
	}
	if err := validateAddress(req.OutputToken); err != nil {
		return models.SwapSubmitResponse{}, fmt.Errorf("%w: output_token", err)
	}
	if req.InputToken == req.OutputToken {
		return models.SwapSubmitResponse{}, fmt.Errorf("%w: input and output token must differ", ErrInvalidDataProvided)
	}
	if err := validateAmount(req.InputAmount); err != nil {
		return models.SwapSubmitResponse{}, err
	}
	slippageBps, err := normalizeSlippage(req.SlippageBps)
	if err != nil {
		return models.SwapSubmitResponse{}, err
	}

	feeBps := 0
	if req.PrivacyMode {
		feeBps = s.privacyFeeBps
	}

	quote, err := s.quotes.Quote(ctx, req.InputToken, req.OutputToken, req.InputAmount, slippageBps)
	if err != nil {
		log.Err(err).Str("input_token", req.InputToken).Str("output_token", req.OutputToken).Msg("pricing swap failed")
		return models.SwapSubmitResponse{}, fmt.Errorf("pricing swap failed: %w", err)
	}

	routeID := req.RouteID
	if routeID == "" {
		routeID = quote.RouteID
	}

	estimatedOutput, err := applyBpsHaircut(quote.OutAmount, feeBps)
	if err != nil {
		return models.SwapSubmitResponse{}, err
	}

	crossChain := req.DestChain != "" && !strings.EqualFold(req.DestChain, homeChain)

	// For public same-chain swaps the wallet signs; fetch the unsigned
	// transaction and a recent blockhash before anything is recorded.
	var unsignedTx, blockhash string
	if !req.PrivacyMode && !crossChain {
		unsignedTx, err = s.quotes.BuildSwapTransaction(ctx, routeID, req.UserAddress)
		if err != nil {
			log.Err(err).Str("route_id", routeID).Msg("building swap transaction failed")
			return models.SwapSubmitResponse{}, fmt.Errorf("building swap transaction failed: %w", err)
		}
		blockhash, err = s.chain.GetLatestBlockhash(ctx)
		if err != nil {
			log.Err(err).Msg("fetching blockhash failed")
			return models.SwapSubmitResponse{}, fmt.Errorf("fetching blockhash failed: %w", err)
		}
	}

	if _, err = s.userRepository.UpsertUser(ctx, req.UserAddress); err != nil {
		return models.SwapSubmitResponse{}, fmt.Errorf("upserting user failed: %w", err)
	}

	intentID := s.uuid.Generate()
	swap, err := s.swapRepository.CreateSwap(ctx, intentID, models.CreateSwapParams{
		ID:          s.uuid.Generate(),
		UserAddress: req.UserAddress,
		InputToken:  req.InputToken,
		OutputToken: req.OutputToken,
		InputAmount: req.InputAmount,
		FeeBps:      feeBps,
		SlippageBps: slippageBps,
		PrivacyMode: req.PrivacyMode,
		RouteID:     routeID,
	})
	if err != nil {
		log.Err(err).Str("intent_id", intentID).Msg("recording swap failed")
		return models.SwapSubmitResponse{}, fmt.Errorf("recording swap failed: %w", err)
	}

	if _, err = s.swapRepository.AddStage(ctx, swap.ID, models.StageInitiated, string(models.StatusCompleted)); err != nil {
		log.Err(err).Str("intent_id", intentID).Msg("recording initial stage failed")
		return models.SwapSubmitResponse{}, fmt.Errorf("recording initial stage failed: %w", err)
	}

	switch {
	case req.PrivacyMode:
		pctx, cancel := s.pipelineContext(ctx)
		go func() {
			defer cancel()
			s.runConfidentialPipeline(pctx, swap)
		}()
	case crossChain:
		minOut, haircutErr := applyBpsHaircut(estimatedOutput, slippageBps)
		if haircutErr != nil {
			return models.SwapSubmitResponse{}, haircutErr
		}
		recipient := req.Recipient
		if recipient == "" {
			recipient = req.UserAddress
		}
		intent := adapter.CrossChainIntent{
			IntentID:     swap.IntentID,
			SourceChain:  homeChain,
			DestChain:    strings.ToLower(req.DestChain),
			InputToken:   swap.InputToken,
			OutputToken:  swap.OutputToken,
			InputAmount:  swap.InputAmount,
			MinOutAmount: minOut,
			Recipient:    recipient,
		}
		pctx, cancel := s.pipelineContext(ctx)
		go func() {
			defer cancel()
			s.runCrossChainPipeline(pctx, swap, intent)
		}()
	}

	return models.SwapSubmitResponse{
		IntentID:        swap.IntentID,
		Status:          swap.Status,
		EstimatedOutput: estimatedOutput,
		FeeBps:          feeBps,
		RouteID:         routeID,
		CreatedAt:       swap.CreatedAt,
		Transaction:     unsignedTx,
		Blockhash:       blockhash,
	}, nil
}

// pipelineContext detaches the asynchronous pipeline from the request
// lifetime while still bounding it with the execution timeout.
func (s *swapService) pipelineContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.execTimeout)
}

// runConfidentialPipeline executes a privacy-mode swap through the
// confidential service: deposit, then encrypted execution. A failure after
// the deposit was confirmed is the critical failure class and is recorded
// with the distinguished error kind; funds recovery is manual.
func (s *swapService) runConfidentialPipeline(ctx context.Context, swap models.Swap) {
	log := s.logger.With().Str("intent_id", swap.IntentID).Logger()

	receipt, err := s.confidential.Deposit(ctx, swap.UserAddress, swap.InputToken, swap.InputAmount)
	if err != nil {
		log.Err(err).Msg("confidential deposit failed")
		s.failSwap(ctx, swap.IntentID, swap.ID, fmt.Sprintf("confidential deposit failed: %v", err))
		return
	}

	if _, err = s.swapRepository.AddStage(ctx, swap.ID, models.StageWrapped, string(models.StatusCompleted)); err != nil {
		log.Err(err).Msg("recording wrapped stage failed")
	}

	result, err := s.confidential.Execute(ctx, receipt.DepositID, swap.RouteID)
	if err != nil {
		log.Err(err).Bool("deposit_confirmed", receipt.Confirmed).Msg("confidential execution failed")
		errMsg := fmt.Sprintf("confidential execution failed: %v", err)
		if receipt.Confirmed {
			errMsg = models.ErrKindDepositConfirmedExecutionFailed + ": " + errMsg
		}
		s.failSwap(ctx, swap.IntentID, swap.ID, errMsg)
		return
	}

	s.settleSwap(ctx, swap.IntentID, swap.ID, result.TxHash, result.OutAmount)
}

// runCrossChainPipeline publishes the intent to the relay and polls its
// settlement until the relay reports a terminal status or the pipeline
// context expires.
func (s *swapService) runCrossChainPipeline(ctx context.Context, swap models.Swap, intent adapter.CrossChainIntent) {
	log := s.logger.With().Str("intent_id", swap.IntentID).Logger()

	relayID, err := s.relay.PublishIntent(ctx, intent)
	if err != nil {
		log.Err(err).Msg("publishing cross-chain intent failed")
		s.failSwap(ctx, swap.IntentID, swap.ID, fmt.Sprintf("publishing cross-chain intent failed: %v", err))
		return
	}
	log.Info().Str("relay_id", relayID).Msg("cross-chain intent published")

	if _, err = s.swapRepository.AddStage(ctx, swap.ID, "intent_published", string(models.StatusCompleted)); err != nil {
		log.Err(err).Msg("recording publish stage failed")
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.failSwap(ctx, swap.IntentID, swap.ID, "cross-chain settlement timed out")
			return
		case <-ticker.C:
			settlement, err := s.relay.GetSettlement(ctx, relayID)
			if err != nil {
				log.Err(err).Str("relay_id", relayID).Msg("settlement poll failed")
				continue
			}
			if !settlement.Status.Terminal() {
				continue
			}

			if settlement.Status == models.StatusCompleted {
				s.settleSwap(ctx, swap.IntentID, swap.ID, settlement.TxHash, "")
			} else {
				s.failSwap(ctx, swap.IntentID, swap.ID, "cross-chain settlement reported "+string(settlement.Status))
			}
			return
		}
	}
}

// Execute relays the client-signed transaction for a pending public swap and
// settles it with the returned signature.
func (s *swapService) Execute(ctx context.Context, intentID, signedTx string) (models.Swap, error) {
	log := logger.FromContext(ctx)

	if signedTx == "" {
		return models.Swap{}, fmt.Errorf("%w: signed transaction is empty", ErrInvalidDataProvided)
	}

	swap, err := s.swapRepository.GetSwapByIntentID(ctx, intentID)
	if err != nil {
		return models.Swap{}, err
	}
	if swap.Status.Terminal() {
		return models.Swap{}, ErrNotExecutable
	}

	// A send failure leaves the swap pending so the client may retry with a
	// fresh blockhash.
	signature, err := s.chain.SendRawTransaction(ctx, signedTx)
	if err != nil {
		log.Err(err).Str("intent_id", intentID).Msg("sending signed transaction failed")
		return models.Swap{}, fmt.Errorf("sending signed transaction failed: %w", err)
	}

	if err = s.settleSwap(ctx, intentID, swap.ID, signature, ""); errors.Is(err, store.ErrInvalidTransition) {
		// The swap reached another terminal state (e.g. cancelled) between the
		// pending check and the send; the transaction is already broadcast, so
		// report the conflict instead of the stale record.
		return models.Swap{}, ErrNotExecutable
	}

	updated, err := s.swapRepository.GetSwapByIntentID(ctx, intentID)
	if err != nil {
		return models.Swap{}, err
	}
	return updated, nil
}

// GetStatus returns the lifecycle snapshot: swap plus ordered stages. For the
// critical failure class the response carries manual recovery instructions.
func (s *swapService) GetStatus(ctx context.Context, intentID string) (models.SwapStatusResponse, error) {
	swap, err := s.swapRepository.GetSwapByIntentID(ctx, intentID)
	if err != nil {
		return models.SwapStatusResponse{}, err
	}

	stages, err := s.swapRepository.ListStages(ctx, swap.ID)
	if err != nil {
		return models.SwapStatusResponse{}, err
	}

	resp := models.SwapStatusResponse{Swap: swap, Stages: stages}
	if swap.Status == models.StatusFailed && strings.HasPrefix(swap.Error, models.ErrKindDepositConfirmedExecutionFailed) {
		resp.RecoveryInstructions = recoveryInstructions(swap.IntentID)
	}

	return resp, nil
}

// Cancel moves the swap to CANCELLED iff it is still pending and owned by
// userAddress.
func (s *swapService) Cancel(ctx context.Context, intentID, userAddress string) (models.Swap, error) {
	log := logger.FromContext(ctx)

	swap, err := s.swapRepository.GetSwapByIntentID(ctx, intentID)
	if err != nil {
		return models.Swap{}, err
	}
	if swap.UserAddress != userAddress {
		log.Warn().Str("intent_id", intentID).Msg("cancel attempted by non-owner")
		return models.Swap{}, ErrNotSwapOwner
	}

	cancelled, err := s.swapRepository.TransitionStatus(ctx, intentID, models.StatusCancelled, models.StatusExtra{})
	if err != nil {
		if errors.Is(err, store.ErrInvalidTransition) {
			return models.Swap{}, ErrNotCancellable
		}
		return models.Swap{}, err
	}

	if _, err = s.swapRepository.AddStage(ctx, cancelled.ID, models.StageCancelled, string(models.StatusCompleted)); err != nil {
		log.Err(err).Str("intent_id", intentID).Msg("recording cancellation stage failed")
	}

	s.notifier.BroadcastSwapStatus(intentID, models.StatusCancelled, models.StatusExtra{})

	return cancelled, nil
}

// History lists the wallet's swaps newest first with an optional status
// filter.
func (s *swapService) History(ctx context.Context, userAddress string, limit, offset int, status *models.SwapStatus) (models.SwapHistoryResponse, error) {
	if err := validateAddress(userAddress); err != nil {
		return models.SwapHistoryResponse{}, err
	}
	if status != nil && !status.Valid() {
		return models.SwapHistoryResponse{}, fmt.Errorf("%w: unknown status filter", ErrInvalidDataProvided)
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	swaps, err := s.swapRepository.ListSwapsByUser(ctx, userAddress, limit, offset, status)
	if err != nil {
		return models.SwapHistoryResponse{}, err
	}

	return models.SwapHistoryResponse{
		Swaps:  swaps,
		Limit:  limit,
		Offset: offset,
		Count:  len(swaps),
	}, nil
}

// settleSwap records the COMPLETED transition with its settlement fields,
// appends the execution stages, and notifies subscribers.
func (s *swapService) settleSwap(ctx context.Context, intentID, swapID, txHash, outputAmount string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
	defer cancel()

	now := time.Now()
	extra := models.StatusExtra{TxHash: &txHash, SettledAt: &now}
	if outputAmount != "" {
		extra.OutputAmount = &outputAmount
	}

	if _, err := s.swapRepository.TransitionStatus(ctx, intentID, models.StatusCompleted, extra); err != nil {
		// The swap may have reached a terminal state while the settlement ran;
		// the transition error is returned so synchronous callers can surface
		// the conflict.
		s.logger.Err(err).Str("intent_id", intentID).Msg("completion transition failed")
		return err
	}

	for _, stage := range []string{models.StageExecuted, models.StageSettled} {
		if _, err := s.swapRepository.AddStage(ctx, swapID, stage, string(models.StatusCompleted)); err != nil {
			s.logger.Err(err).Str("intent_id", intentID).Str("stage", stage).Msg("recording stage failed")
		}
	}

	s.notifier.BroadcastSwapStatus(intentID, models.StatusCompleted, extra)
	return nil
}

// failSwap records the FAILED transition with the diagnostic string, appends
// the failure stage, and notifies subscribers.
func (s *swapService) failSwap(ctx context.Context, intentID, swapID, errMsg string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
	defer cancel()

	extra := models.StatusExtra{Error: &errMsg}

	if _, err := s.swapRepository.TransitionStatus(ctx, intentID, models.StatusFailed, extra); err != nil {
		// The swap may have been cancelled while the pipeline ran; the strict
		// status machine already holds the terminal state.
		s.logger.Err(err).Str("intent_id", intentID).Msg("failure transition failed")
		return
	}

	if _, err := s.swapRepository.AddStage(ctx, swapID, models.StageFailed, string(models.StatusFailed)); err != nil {
		s.logger.Err(err).Str("intent_id", intentID).Msg("recording failure stage failed")
	}

	s.notifier.BroadcastSwapStatus(intentID, models.StatusFailed, extra)
}

// recoveryInstructions is the human-readable manual recovery text attached to
// swaps that failed after a confirmed confidential deposit.
func recoveryInstructions(intentID string) string {
	return "The confidential deposit was confirmed but the swap execution failed. " +
		"Funds remain in the confidential pool and are not lost. " +
		"Contact support with intent id " + intentID + " to initiate manual recovery; " +
		"do not resubmit the swap."
}
