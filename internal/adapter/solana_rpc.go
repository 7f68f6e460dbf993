package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"

	"github.com/waveswap/waveswap/internal/config"
	"github.com/waveswap/waveswap/internal/logger"
)

// solanaRPCClient is the JSON-RPC 2.0 implementation of [SolanaRPC].
// Only the two methods the backend proxies are exposed; everything else the
// frontend does against the chain goes through the wallet adapter directly.
type solanaRPCClient struct {
	client    *resty.Client
	logger    *logger.Logger
	requestID atomic.Uint64
}

// NewSolanaRPCClient constructs a [SolanaRPC] against the endpoint in cfg.
// cfg.RequestTimeout bounds every call (30s by default).
func NewSolanaRPCClient(cfg config.Upstream, logger *logger.Logger) SolanaRPC {
	client := resty.New().
		SetBaseURL(cfg.SolanaRPCURL).
		SetTimeout(cfg.RequestTimeout)

	return &solanaRPCClient{client: client, logger: logger}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// call performs a single JSON-RPC round trip and decodes the result field
// into result.
func (s *solanaRPCClient) call(ctx context.Context, method string, params []any, result any) error {
	var rpcResp rpcResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rpcRequest{
			JSONRPC: "2.0",
			ID:      s.requestID.Add(1),
			Method:  method,
			Params:  params,
		}).
		SetResult(&rpcResp).
		Post("")
	if err != nil {
		return fmt.Errorf("%w: rpc %s: %w", ErrUpstreamUnavailable, method, err)
	}
	if err = mapHTTPError(resp); err != nil {
		s.logger.Err(err).Str("method", method).Msg("solana rpc http failure")
		return err
	}
	if rpcResp.Error != nil {
		s.logger.Err(rpcResp.Error).Str("method", method).Msg("solana rpc error")
		return fmt.Errorf("%w: rpc %s: %w", ErrUpstreamRejected, method, rpcResp.Error)
	}

	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode rpc %s result: %w", method, err)
		}
	}

	return nil
}

// GetLatestBlockhash implements [SolanaRPC].
func (s *solanaRPCClient) GetLatestBlockhash(ctx context.Context) (string, error) {
	var result struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}

	if err := s.call(ctx, "getLatestBlockhash",
		[]any{map[string]string{"commitment": "confirmed"}}, &result); err != nil {
		return "", err
	}

	return result.Value.Blockhash, nil
}

// SendRawTransaction implements [SolanaRPC]. serializedTx is the
// base64-encoded signed transaction; the returned string is the signature.
func (s *solanaRPCClient) SendRawTransaction(ctx context.Context, serializedTx string) (string, error) {
	var signature string

	if err := s.call(ctx, "sendTransaction",
		[]any{serializedTx, map[string]string{"encoding": "base64"}}, &signature); err != nil {
		return "", err
	}

	return signature, nil
}
