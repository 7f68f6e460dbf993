// Package adapter provides transport clients for the external services the
// backend delegates to: the Jupiter quote/swap API, the Encifher
// confidential-token service, the NEAR cross-chain intents relay, and the
// Solana JSON-RPC endpoint.
//
// Every adapter is a thin pass-through: parameter shaping on the way out,
// response decoding on the way in, and transport-level error mapping to the
// sentinel values defined in errors.go so that callers can use [errors.Is]
// without inspecting HTTP status codes. There is no retry or circuit-breaker
// machinery here; an upstream failure surfaces immediately.
package adapter

import (
	"context"

	"github.com/waveswap/waveswap/models"
)

// QuoteProvider fetches swap pricing and builds swap transactions. The
// production implementation talks to Jupiter.
type QuoteProvider interface {
	// Quote prices inputAmount of inputMint against outputMint.
	Quote(ctx context.Context, inputMint, outputMint, inputAmount string, slippageBps int) (QuoteResult, error)

	// BuildSwapTransaction asks the provider to assemble the serialized
	// transaction executing the previously quoted route for userAddress.
	BuildSwapTransaction(ctx context.Context, routeID, userAddress string) (string, error)
}

// ConfidentialService wraps the Encifher confidential-token operations used
// by privacy-mode swaps. Payloads are opaque to this service.
type ConfidentialService interface {
	// Deposit moves amount of mint into the confidential pool for
	// userAddress and reports whether the deposit is already confirmed.
	Deposit(ctx context.Context, userAddress, mint, amount string) (DepositReceipt, error)

	// Execute runs the confidential swap for a confirmed deposit.
	Execute(ctx context.Context, depositID, routeID string) (ExecutionResult, error)
}

// IntentsRelay publishes cross-chain intents to the NEAR solver relay and
// polls their settlement.
type IntentsRelay interface {
	PublishIntent(ctx context.Context, intent CrossChainIntent) (string, error)
	GetSettlement(ctx context.Context, relayID string) (SettlementStatus, error)
}

// SolanaRPC proxies the two RPC calls the backend needs when submitting
// transactions on behalf of clients.
type SolanaRPC interface {
	GetLatestBlockhash(ctx context.Context) (string, error)
	SendRawTransaction(ctx context.Context, serializedTx string) (string, error)
}

// QuoteResult is the normalised pricing answer from the quote provider.
type QuoteResult struct {
	OutAmount      string
	RouteID        string
	PriceImpactBps int
}

// DepositReceipt acknowledges a confidential deposit.
type DepositReceipt struct {
	DepositID string
	Confirmed bool
}

// ExecutionResult reports a completed confidential execution.
type ExecutionResult struct {
	TxHash    string
	OutAmount string
}

// CrossChainIntent is the payload published to the NEAR relay.
type CrossChainIntent struct {
	IntentID     string `json:"intent_id"`
	SourceChain  string `json:"source_chain"`
	DestChain    string `json:"dest_chain"`
	InputToken   string `json:"input_token"`
	OutputToken  string `json:"output_token"`
	InputAmount  string `json:"input_amount"`
	MinOutAmount string `json:"min_out_amount"`
	Recipient    string `json:"recipient"`
}

// SettlementStatus is the relay's view of a published intent.
type SettlementStatus struct {
	Status models.SwapStatus `json:"status"`
	TxHash string            `json:"tx_hash"`
}

// Adapters aggregates every upstream client behind its interface.
type Adapters struct {
	QuoteProvider       QuoteProvider
	ConfidentialService ConfidentialService
	IntentsRelay        IntentsRelay
	SolanaRPC           SolanaRPC
}
