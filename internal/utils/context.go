// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, JWT token generation and validation,
// UUID generation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserAddressCtxKey is the key used to store the authenticated wallet address
// in the context. Set by the auth middleware after token validation and read
// by handlers that need the caller's identity.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserAddressCtxKey, "9xQe...")
var UserAddressCtxKey = contextKey("userAddress")

// GetUserAddressFromContext retrieves the authenticated wallet address from
// the context.
//
// Returns the address and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetUserAddressFromContext(ctx context.Context) (string, bool) {
	address, ok := ctx.Value(UserAddressCtxKey).(string)
	return address, ok
}
