package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
)

// jupiterClient is the HTTP implementation of [QuoteProvider] against the
// Jupiter v6 quote/swap API.
type jupiterClient struct {
	client *resty.Client
	logger *logger.Logger
}

// NewJupiterClient constructs a [QuoteProvider] talking to the Jupiter API
// configured in cfg. Every request is capped by cfg.RequestTimeout.
func NewJupiterClient(cfg config.Upstream, logger *logger.Logger) QuoteProvider {
	client := resty.New().
		SetBaseURL(cfg.JupiterURL).
		SetTimeout(cfg.RequestTimeout)

	return &jupiterClient{client: client, logger: logger}
}

// jupiterQuoteResponse is the subset of the Jupiter quote answer we consume.
type jupiterQuoteResponse struct {
	OutAmount      string `json:"outAmount"`
	RoutePlanID    string `json:"routePlanId"`
	PriceImpactPct string `json:"priceImpactPct"`
}

// jupiterSwapRequest is the body of POST /swap.
type jupiterSwapRequest struct {
	RoutePlanID   string `json:"routePlanId"`
	UserPublicKey string `json:"userPublicKey"`
}

// jupiterSwapResponse carries the serialized transaction built upstream.
type jupiterSwapResponse struct {
	SwapTransaction string `json:"swapTransaction"`
}

// Quote implements [QuoteProvider]. It GETs /quote and normalises the
// answer. Returns [ErrNoRouteFound] when Jupiter has no route and
// [ErrUpstreamUnavailable] on transport or 5xx failures.
func (j *jupiterClient) Quote(ctx context.Context, inputMint, outputMint, inputAmount string, slippageBps int) (QuoteResult, error) {
	var quote jupiterQuoteResponse

	resp, err := j.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"inputMint":   inputMint,
			"outputMint":  outputMint,
			"amount":      inputAmount,
			"slippageBps": strconv.Itoa(slippageBps),
		}).
		SetResult(&quote).
		Get("/quote")
	if err != nil {
		return QuoteResult{}, fmt.Errorf("%w: quote request: %w", ErrUpstreamUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		j.logger.Err(err).Str("body", string(resp.Body())).Msg("jupiter quote failed")
		return QuoteResult{}, err
	}

	return QuoteResult{
		OutAmount:      quote.OutAmount,
		RouteID:        quote.RoutePlanID,
		PriceImpactBps: pctToBps(quote.PriceImpactPct),
	}, nil
}

// BuildSwapTransaction implements [QuoteProvider]. It POSTs /swap for the
// pinned route and returns the serialized transaction.
func (j *jupiterClient) BuildSwapTransaction(ctx context.Context, routeID, userAddress string) (string, error) {
	var swap jupiterSwapResponse

	resp, err := j.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(jupiterSwapRequest{RoutePlanID: routeID, UserPublicKey: userAddress}).
		SetResult(&swap).
		Post("/swap")
	if err != nil {
		return "", fmt.Errorf("%w: swap build request: %w", ErrUpstreamUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		j.logger.Err(err).Str("body", string(resp.Body())).Msg("jupiter swap build failed")
		return "", err
	}

	return swap.SwapTransaction, nil
}

// pctToBps converts Jupiter's decimal percentage string (e.g. "0.12") to
// basis points. The decimal point is shifted textually so two-decimal inputs
// convert exactly; further digits truncate toward zero. Unparseable input
// maps to 0.
func pctToBps(pct string) int {
	s := strings.TrimSpace(pct)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	whole, err := strconv.Atoi(intPart)
	if err != nil {
		return 0
	}
	hundredths, err := strconv.Atoi((fracPart + "00")[:2])
	if err != nil {
		return 0
	}

	bps := whole*100 + hundredths
	if neg {
		bps = -bps
	}
	return bps
}
