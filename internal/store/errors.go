package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSwapNotFound is returned when a query targets an intent id with no
	// matching swap row.
	ErrSwapNotFound = errors.New("swap not found")

	// ErrIntentAlreadyExists is returned when inserting a swap collides with
	// an existing intent_id (unique violation). Intent ids are UUIDs, so in
	// practice this indicates a duplicate submission of the same request.
	ErrIntentAlreadyExists = errors.New("intent id already exists")

	// ErrInvalidTransition is returned when a conditional status update
	// matches the intent id but not the expected current state: the swap has
	// already reached a terminal status and may not be moved again.
	ErrInvalidTransition = errors.New("swap already in terminal status")

	// ErrSessionNotFound is returned when a session row is absent or its
	// valid_until has passed. The bearer token is treated as revoked.
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrTokenMetadataNotFound is returned when no metadata row exists for
	// the requested mint.
	ErrTokenMetadataNotFound = errors.New("token metadata not found")
)
