package adapter

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
)

// nearRelayClient is the HTTP implementation of [IntentsRelay] against the
// NEAR solver relay.
type nearRelayClient struct {
	client *resty.Client
	logger *logger.Logger
}

// NewNearRelayClient constructs an [IntentsRelay] talking to the relay
// configured in cfg.
func NewNearRelayClient(cfg config.Upstream, logger *logger.Logger) IntentsRelay {
	client := resty.New().
		SetBaseURL(cfg.NearRelayURL).
		SetTimeout(cfg.RequestTimeout)

	return &nearRelayClient{client: client, logger: logger}
}

type relayPublishResponse struct {
	RelayID string `json:"relay_id"`
}

// PublishIntent implements [IntentsRelay].
func (n *nearRelayClient) PublishIntent(ctx context.Context, intent CrossChainIntent) (string, error) {
	var published relayPublishResponse

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(intent).
		SetResult(&published).
		Post("/intents")
	if err != nil {
		return "", fmt.Errorf("%w: publish intent request: %w", ErrUpstreamUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		n.logger.Err(err).Str("body", string(resp.Body())).Msg("near relay publish failed")
		return "", err
	}

	return published.RelayID, nil
}

// GetSettlement implements [IntentsRelay].
func (n *nearRelayClient) GetSettlement(ctx context.Context, relayID string) (SettlementStatus, error) {
	var settlement SettlementStatus

	resp, err := n.client.R().
		SetContext(ctx).
		SetResult(&settlement).
		Get("/intents/" + relayID)
	if err != nil {
		return SettlementStatus{}, fmt.Errorf("%w: settlement request: %w", ErrUpstreamUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		n.logger.Err(err).Str("body", string(resp.Body())).Msg("near relay settlement lookup failed")
		return SettlementStatus{}, err
	}

	return settlement, nil
}
