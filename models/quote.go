package models

import "time"

// Quote is the pricing result returned to clients. It mirrors the upstream
// aggregator response shape, normalised to the fields the frontend consumes.
type Quote struct {
	InputToken  string `json:"input_token"`
	OutputToken string `json:"output_token"`

	// InputAmount and OutputAmount are base-unit integer amounts as decimal
	// strings.
	InputAmount  string `json:"input_amount"`
	OutputAmount string `json:"output_amount"`

	// RouteID identifies the upstream route that produced this price.
	RouteID string `json:"route_id"`

	// PriceImpactBps is the quoted price impact in basis points.
	PriceImpactBps int `json:"price_impact_bps"`

	// FeeBps is the service fee applied on top of the upstream quote.
	FeeBps int `json:"fee_bps"`

	SlippageBps int  `json:"slippage_bps"`
	PrivacyMode bool `json:"privacy_mode"`

	// Cached is true when the quote was served from the short-TTL cache.
	Cached bool `json:"cached"`

	// ExpiresAt is the moment the quote stops being usable for submission.
	ExpiresAt time.Time `json:"expires_at"`
}

// QuoteCacheEntry is a memoized pricing row keyed by the exact
// (input token, output token, input amount) triple.
type QuoteCacheEntry struct {
	ID             int64
	InputToken     string
	OutputToken    string
	InputAmount    string
	OutputAmount   string
	RouteID        string
	PriceImpactBps int
	ExpiresAt      time.Time
}

// TableName returns the name of the database table
// associated with the QuoteCacheEntry model.
func (q QuoteCacheEntry) TableName() string {
	return "quote_cache"
}
