package adapter

import "errors"

// Sentinel errors mapped from upstream responses by mapHTTPError. Callers
// match with [errors.Is]; the raw upstream body is logged, never returned to
// API clients.
var (
	// ErrUpstreamUnavailable covers network failures and 5xx answers from
	// any upstream service.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrUpstreamRejected covers 4xx answers: the upstream understood the
	// request and refused it.
	ErrUpstreamRejected = errors.New("upstream rejected request")

	// ErrNoRouteFound is returned when the quote provider has no route for
	// the requested pair/amount.
	ErrNoRouteFound = errors.New("no route found for token pair")
)
