package service

import "math/big"

const (
	// feeDenominatorBps is the basis-point denominator for fee and slippage
	// arithmetic.
	feeDenominatorBps = 10000

	// defaultSlippageBps is applied when a request omits slippage.
	defaultSlippageBps = 50
)

// applyBpsHaircut reduces a base-unit integer amount by cutBps basis points,
// rounding down. Used for the privacy service fee and for the minimum-output
// slippage bound.
func applyBpsHaircut(amount string, cutBps int) (string, error) {
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok || n.Sign() < 0 {
		return "", ErrInvalidAmount
	}
	if cutBps <= 0 {
		return n.String(), nil
	}

	n.Mul(n, big.NewInt(int64(feeDenominatorBps-cutBps)))
	n.Quo(n, big.NewInt(feeDenominatorBps))

	return n.String(), nil
}
