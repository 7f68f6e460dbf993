package service

import (
	"context"
	"fmt"
	"time"

	"github.com/waveswap/waveswap/internal/adapter"
	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/internal/store"
	"github.com/waveswap/waveswap/models"
)

// quoteService is the concrete implementation of QuoteService: a pass-through
// to the upstream quote provider with an exact-triple, short-TTL cache in
// front. The cache is not authoritative; a read or write failure degrades to
// an upstream fetch rather than failing the request.
type quoteService struct {
	quoteCache store.QuoteCacheRepository
	provider   adapter.QuoteProvider

	privacyFeeBps int
	defaultTTL    time.Duration

	logger *logger.Logger
}

// NewQuoteService constructs a QuoteService over the cache repository and the
// upstream provider.
func NewQuoteService(quoteCache store.QuoteCacheRepository, provider adapter.QuoteProvider, cfg config.App, logger *logger.Logger) QuoteService {
	return &quoteService{
		quoteCache:    quoteCache,
		provider:      provider,
		privacyFeeBps: cfg.PrivacyFeeBps,
		defaultTTL:    cfg.QuoteTTL,
		logger:        logger,
	}
}

// GetQuote prices the pair, serving from cache when a live entry exists for
// the exact (input, output, amount) triple. The privacy fee is applied at
// read time so the cache stores the raw upstream amount and serves both
// modes.
func (q *quoteService) GetQuote(ctx context.Context, req models.QuoteRequest) (models.Quote, error) {
	log := logger.FromContext(ctx)

	if err := validateAddress(req.InputToken); err != nil {
		return models.Quote{}, fmt.Errorf("%w: input_token", err)
	}
	if err := validateAddress(req.OutputToken); err != nil {
		return models.Quote{}, fmt.Errorf("%w: output_token", err)
	}
	if req.InputToken == req.OutputToken {
		return models.Quote{}, fmt.Errorf("%w: input and output token must differ", ErrInvalidDataProvided)
	}
	if err := validateAmount(req.InputAmount); err != nil {
		return models.Quote{}, err
	}
	slippageBps, err := normalizeSlippage(req.SlippageBps)
	if err != nil {
		return models.Quote{}, err
	}

	feeBps := 0
	if req.PrivacyMode {
		feeBps = q.privacyFeeBps
	}

	entry, err := q.quoteCache.GetCachedQuote(ctx, req.InputToken, req.OutputToken, req.InputAmount)
	if err != nil {
		log.Err(err).Msg("quote cache lookup failed, falling through to upstream")
	}
	if entry != nil {
		outputAmount, feeErr := applyBpsHaircut(entry.OutputAmount, feeBps)
		if feeErr != nil {
			return models.Quote{}, feeErr
		}
		return models.Quote{
			InputToken:     req.InputToken,
			OutputToken:    req.OutputToken,
			InputAmount:    req.InputAmount,
			OutputAmount:   outputAmount,
			RouteID:        entry.RouteID,
			PriceImpactBps: entry.PriceImpactBps,
			FeeBps:         feeBps,
			SlippageBps:    slippageBps,
			PrivacyMode:    req.PrivacyMode,
			Cached:         true,
			ExpiresAt:      entry.ExpiresAt,
		}, nil
	}

	result, err := q.provider.Quote(ctx, req.InputToken, req.OutputToken, req.InputAmount, slippageBps)
	if err != nil {
		log.Err(err).Str("input_token", req.InputToken).Str("output_token", req.OutputToken).Msg("upstream quote failed")
		return models.Quote{}, fmt.Errorf("upstream quote failed: %w", err)
	}

	ttl := q.defaultTTL
	if req.ValidForMs > 0 {
		ttl = time.Duration(req.ValidForMs) * time.Millisecond
	}
	expiresAt := time.Now().Add(ttl)

	if err = q.quoteCache.UpsertQuote(ctx, models.QuoteCacheEntry{
		InputToken:     req.InputToken,
		OutputToken:    req.OutputToken,
		InputAmount:    req.InputAmount,
		OutputAmount:   result.OutAmount,
		RouteID:        result.RouteID,
		PriceImpactBps: result.PriceImpactBps,
		ExpiresAt:      expiresAt,
	}); err != nil {
		log.Err(err).Msg("quote cache write failed")
	}

	outputAmount, err := applyBpsHaircut(result.OutAmount, feeBps)
	if err != nil {
		return models.Quote{}, err
	}

	return models.Quote{
		InputToken:     req.InputToken,
		OutputToken:    req.OutputToken,
		InputAmount:    req.InputAmount,
		OutputAmount:   outputAmount,
		RouteID:        result.RouteID,
		PriceImpactBps: result.PriceImpactBps,
		FeeBps:         feeBps,
		SlippageBps:    slippageBps,
		PrivacyMode:    req.PrivacyMode,
		Cached:         false,
		ExpiresAt:      expiresAt,
	}, nil
}

// InvalidateCache deletes every cached quote for the exact pair and returns
// the number of rows removed.
func (q *quoteService) InvalidateCache(ctx context.Context, inputToken, outputToken string) (int64, error) {
	if err := validateAddress(inputToken); err != nil {
		return 0, fmt.Errorf("%w: input_token", err)
	}
	if err := validateAddress(outputToken); err != nil {
		return 0, fmt.Errorf("%w: output_token", err)
	}

	return q.quoteCache.InvalidatePair(ctx, inputToken, outputToken)
}
