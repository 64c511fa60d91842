package kernel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

var (
	ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or ParseMoney")
	ErrMoneyIsNegative       = errors.New("amount must not be negative")
	ErrMoneyIsTooPrecise     = errors.New("amount must have at most 2 decimal places")
	ErrMoneyIsTooLarge       = errors.New("amount must be less than 100000000")
)

// maxMoney mirrors a numeric(10,2) column.
var maxMoney = decimal.New(1, 8)

// Money is a non-negative monetary amount with two decimal places.
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// ParseMoney parses a decimal string such as "1000" or "249.90".
func ParseMoney(raw string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Money{}, fmt.Errorf("%q is not a decimal number", raw)
	}
	return NewMoney(d)
}

// NewMoney validates an amount that already is a decimal.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	if !amount.Equal(amount.Truncate(moneyScale)) {
		return Money{}, ErrMoneyIsTooPrecise
	}
	if amount.GreaterThanOrEqual(maxMoney) {
		return Money{}, ErrMoneyIsTooLarge
	}
	return Money{amount: amount, isConstructed: true}, nil
}

// ZeroMoney is the constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

// MultiplyRounded returns m*rate rounded half away from zero to two decimal places.
// For the non-negative amounts Money holds this is half-up rounding.
func (m Money) MultiplyRounded(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(moneyScale), isConstructed: true}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats with exactly two decimals, e.g. "100.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
