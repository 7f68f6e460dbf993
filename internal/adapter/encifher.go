package adapter

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
)

// encifherClient is the HTTP implementation of [ConfidentialService].
// Payloads are treated as opaque: the backend never decrypts or inspects
// confidential amounts, it only correlates deposit and execution ids.
type encifherClient struct {
	client *resty.Client
	logger *logger.Logger
}

// NewEncifherClient constructs a [ConfidentialService] talking to the
// Encifher service configured in cfg.
func NewEncifherClient(cfg config.Upstream, logger *logger.Logger) ConfidentialService {
	client := resty.New().
		SetBaseURL(cfg.EncifherURL).
		SetTimeout(cfg.RequestTimeout)

	return &encifherClient{client: client, logger: logger}
}

type encifherDepositRequest struct {
	UserAddress string `json:"user_address"`
	Mint        string `json:"mint"`
	Amount      string `json:"amount"`
}

type encifherDepositResponse struct {
	DepositID string `json:"deposit_id"`
	Confirmed bool   `json:"confirmed"`
}

type encifherExecuteRequest struct {
	DepositID string `json:"deposit_id"`
	RouteID   string `json:"route_id"`
}

type encifherExecuteResponse struct {
	TxHash    string `json:"tx_hash"`
	OutAmount string `json:"out_amount"`
}

// Deposit implements [ConfidentialService].
func (e *encifherClient) Deposit(ctx context.Context, userAddress, mint, amount string) (DepositReceipt, error) {
	var deposit encifherDepositResponse

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(encifherDepositRequest{UserAddress: userAddress, Mint: mint, Amount: amount}).
		SetResult(&deposit).
		Post("/v1/deposit")
	if err != nil {
		return DepositReceipt{}, fmt.Errorf("%w: confidential deposit request: %w", ErrUpstreamUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		e.logger.Err(err).Str("body", string(resp.Body())).Msg("encifher deposit failed")
		return DepositReceipt{}, err
	}

	return DepositReceipt{DepositID: deposit.DepositID, Confirmed: deposit.Confirmed}, nil
}

// Execute implements [ConfidentialService]. It must only be called for a
// confirmed deposit; a failure here after confirmation is the critical
// failure class the swap service records as
// DEPOSIT_CONFIRMED_EXECUTION_FAILED.
func (e *encifherClient) Execute(ctx context.Context, depositID, routeID string) (ExecutionResult, error) {
	var execution encifherExecuteResponse

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(encifherExecuteRequest{DepositID: depositID, RouteID: routeID}).
		SetResult(&execution).
		Post("/v1/execute")
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("%w: confidential execute request: %w", ErrUpstreamUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		e.logger.Err(err).Str("body", string(resp.Body())).Msg("encifher execute failed")
		return ExecutionResult{}, err
	}

	return ExecutionResult{TxHash: execution.TxHash, OutAmount: execution.OutAmount}, nil
}
