package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// MaxAmount is the largest value a balance or amount may hold (2^127 - 1).
	MaxAmount = decimal.NewFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1)), 0)
	// MinAmount is the smallest value a balance or amount may hold (-2^127).
	MinAmount = decimal.NewFromBigInt(new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127)), 0)
)

// CheckAmount verifies that d is an integer inside the signed 128-bit range.
func CheckAmount(d decimal.Decimal) error {
	if !d.IsInteger() {
		return fmt.Errorf("amount %s is not an integer", d.String())
	}
	if d.GreaterThan(MaxAmount) || d.LessThan(MinAmount) {
		return fmt.Errorf("amount %s is outside the signed 128-bit range", d.String())
	}
	return nil
}

// ParseAmount parses a base-10 integer string into an amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if err := CheckAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
