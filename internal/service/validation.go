package service

import (
	"math/big"

	"github.com/mr-tron/base58"
)

// solanaAddressLength is the decoded byte length of a Solana public key.
const solanaAddressLength = 32

// validateAddress checks that s is a base58 string decoding to a 32-byte
// Solana public key.
func validateAddress(s string) error {
	decoded, err := base58.Decode(s)
	if err != nil || len(decoded) != solanaAddressLength {
		return ErrInvalidAddress
	}
	return nil
}

// validateAmount checks that s is a positive base-10 integer. Amounts are
// base-unit quantities carried as decimal strings and may exceed uint64.
func validateAmount(s string) error {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// normalizeSlippage applies the default slippage when the caller omitted it
// and bounds-checks the result.
func normalizeSlippage(slippageBps int) (int, error) {
	if slippageBps == 0 {
		slippageBps = defaultSlippageBps
	}
	if slippageBps < 0 || slippageBps > feeDenominatorBps {
		return 0, ErrInvalidSlippage
	}
	return slippageBps, nil
}
