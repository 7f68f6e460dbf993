package models

import "time"

// ErrorResponse is the uniform JSON error body returned by every route.
type ErrorResponse struct {
	// Error is a short machine-readable error code.
	Error string `json:"error"`

	// Message is the human-readable description.
	Message string `json:"message"`
}

// SwapSubmitResponse is returned by POST /api/v1/swap/submit.
type SwapSubmitResponse struct {
	IntentID        string     `json:"intent_id"`
	Status          SwapStatus `json:"status"`
	EstimatedOutput string     `json:"estimated_output"`
	FeeBps          int        `json:"fee_bps"`
	RouteID         string     `json:"route_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`

	// Transaction and Blockhash are populated for public same-chain swaps:
	// the unsigned serialized transaction the wallet must sign and the recent
	// blockhash to sign it against. The signed result goes back through
	// POST /api/v1/swap/{intentID}/execute.
	Transaction string `json:"transaction,omitempty"`
	Blockhash   string `json:"blockhash,omitempty"`
}

// SwapStatusResponse is the lifecycle snapshot returned by
// GET /api/v1/swap/{intentID}/status: the swap row plus its ordered stages.
type SwapStatusResponse struct {
	Swap   Swap        `json:"swap"`
	Stages []SwapStage `json:"stages"`

	// RecoveryInstructions is populated only for the critical failure class
	// where execution failed after a confirmed confidential deposit.
	RecoveryInstructions string `json:"recovery_instructions,omitempty"`
}

// SwapHistoryResponse is the paginated list returned by
// GET /api/v1/swap/history/{userAddress}.
type SwapHistoryResponse struct {
	Swaps  []Swap `json:"swaps"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`

	// Count is the number of entries in Swaps, for convenience.
	Count int `json:"count"`
}

// SessionResponse is returned by POST /api/v1/auth/session.
type SessionResponse struct {
	Token      string    `json:"token"`
	ValidUntil time.Time `json:"valid_until"`
}
