package models

import "time"

// RateLimitWindow is a fixed-window request counter keyed by
// (user address, endpoint). The user address is empty for anonymous callers.
type RateLimitWindow struct {
	ID           int64
	UserAddress  string
	Endpoint     string
	WindowStart  time.Time
	WindowEnd    time.Time
	RequestCount int
}

// TableName returns the name of the database table
// associated with the RateLimitWindow model.
func (r RateLimitWindow) TableName() string {
	return "rate_limits"
}
