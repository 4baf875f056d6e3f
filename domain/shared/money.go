package shared

import (
	"errors"
	"fmt"
	"math"
)

// DefaultCurrency is used wherever the platform handles a single currency.
const DefaultCurrency = "CNY"

// Money value object. Amounts are stored in the smallest currency unit
// (fen for CNY) to keep arithmetic exact.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value object.
func NewMoney(amount int64, currency string) *Money {
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// CNY creates a Money in the default currency.
func CNY(amount int64) Money {
	return Money{amount: amount, currency: DefaultCurrency}
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two amounts of the same currency.
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot add money with different currencies")
	}

	return &Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// Multiply scales the amount by a quantity with an overflow check.
func (m Money) Multiply(quantity int) (*Money, error) {
	q := int64(quantity)
	if q != 0 && (m.amount > math.MaxInt64/q || m.amount < math.MinInt64/q) {
		return nil, fmt.Errorf("money overflow: %d * %d", m.amount, q)
	}

	return &Money{
		amount:   m.amount * q,
		currency: m.currency,
	}, nil
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// Equals compares two Money value objects.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}
