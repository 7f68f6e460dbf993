package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidAddress      = errors.New("invalid base58 address")
	ErrInvalidAmount       = errors.New("amount must be a positive base-unit integer")
	ErrInvalidSlippage     = errors.New("slippage must be between 0 and 10000 basis points")

	// ErrNotCancellable is returned when cancellation targets a swap that has
	// already reached a terminal status.
	ErrNotCancellable = errors.New("cannot cancel swap")

	// ErrNotExecutable is returned when a signed transaction is submitted for
	// a swap that is no longer pending.
	ErrNotExecutable = errors.New("swap is not pending execution")

	// ErrNotSwapOwner is returned when the authenticated wallet does not own
	// the targeted swap.
	ErrNotSwapOwner = errors.New("swap does not belong to the authenticated wallet")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrMathOverflow is returned by the staking projection when a checked
	// multiplication leaves the u64 range, mirroring the on-chain program.
	ErrMathOverflow = errors.New("math overflow")
)
