package common

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// TokenDecimals is the base-unit exponent of the staked token (6, like USDC)
const TokenDecimals = 6

var (
	ErrEmptyAmount    = errors.New("empty amount")
	ErrInvalidAmount  = errors.New("amount must be a positive number")
	ErrAmountOverflow = errors.New("amount does not fit into u64 base units")
)

// ToBaseUnits converts a decimal token amount to integer base units: floor(amount * 10^decimals)
func ToBaseUnits(amount decimal.Decimal, decimals int32) (uint64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("negative amount %s: %w", amount.String(), ErrInvalidAmount)
	}

	scaled := amount.Shift(decimals).Floor().BigInt()
	if !scaled.IsUint64() {
		return 0, ErrAmountOverflow
	}
	return scaled.Uint64(), nil
}

// FromBaseUnits converts integer base units to a decimal token amount without float precision loss
// Example: FromBaseUnits(1500000, 6) = 1.5
func FromBaseUnits(units uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -decimals)
}

// ParseAmount parses user input into a strictly positive decimal amount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// ParseBaseUnits parses a user amount and converts it to base units in one step.
// Amounts that floor to zero base units are rejected.
func ParseBaseUnits(s string, decimals int32) (uint64, error) {
	amount, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}

	units, err := ToBaseUnits(amount, decimals)
	if err != nil {
		return 0, err
	}
	if units == 0 {
		return 0, fmt.Errorf("amount %s is below the smallest unit: %w", s, ErrInvalidAmount)
	}
	return units, nil
}
