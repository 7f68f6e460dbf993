package models

// QuoteRequest is the body of POST /api/v1/quote.
type QuoteRequest struct {
	InputToken  string `json:"input_token"`
	OutputToken string `json:"output_token"`

	// InputAmount is a positive base-unit integer as a decimal string.
	InputAmount string `json:"input_amount"`

	// SlippageBps defaults to 50 when omitted.
	SlippageBps int `json:"slippage_bps,omitempty"`

	PrivacyMode bool `json:"privacy_mode,omitempty"`

	// ValidForMs overrides the cache TTL for the stored quote row.
	// Zero means the configured default.
	ValidForMs int64 `json:"valid_for_ms,omitempty"`
}

// SwapSubmitRequest is the body of POST /api/v1/swap/submit.
type SwapSubmitRequest struct {
	UserAddress string `json:"user_address"`
	InputToken  string `json:"input_token"`
	OutputToken string `json:"output_token"`
	InputAmount string `json:"input_amount"`
	SlippageBps int    `json:"slippage_bps,omitempty"`
	PrivacyMode bool   `json:"privacy_mode,omitempty"`

	// RouteID pins a previously quoted route. Optional.
	RouteID string `json:"route_id,omitempty"`

	// DestChain names the destination chain for cross-chain swaps. Empty or
	// "solana" means a same-chain swap.
	DestChain string `json:"dest_chain,omitempty"`

	// Recipient is the destination-chain address for cross-chain swaps.
	// Defaults to UserAddress when empty.
	Recipient string `json:"recipient,omitempty"`
}

// SwapExecuteRequest is the body of POST /api/v1/swap/{intentID}/execute: the
// client-signed transaction to relay to the chain.
type SwapExecuteRequest struct {
	// SignedTransaction is the base64-encoded signed transaction.
	SignedTransaction string `json:"signed_transaction"`
}

// SessionRequest is the body of POST /api/v1/auth/session.
type SessionRequest struct {
	UserAddress string `json:"user_address"`
}

// StakeRewardsRequest is the body of POST /api/v1/stake/rewards. The caller
// supplies the on-chain pool and position fields it read from the program
// accounts; the server only runs the projection math.
type StakeRewardsRequest struct {
	Pool     StakePool     `json:"pool"`
	Position StakePosition `json:"position"`

	// AsOf is the unix timestamp to project to. Zero means "now".
	AsOf int64 `json:"as_of,omitempty"`
}
