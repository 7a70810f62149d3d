// Package money provides the fixed-point amount type used across the ledger.
// Amounts carry a scale of 2 and every division or percentage application
// rounds half-up at that boundary. Binary floats never enter the arithmetic.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Money is a decimal amount with two fractional digits.
// The zero value is a valid zero amount.
type Money struct {
	decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{}
}

// New builds an amount from a decimal, rounded to two places half-up.
func New(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

// FromString parses an amount accepting either '.' or ',' as the decimal
// separator. The result is rounded to two places.
func FromString(s string) (Money, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, err
	}
	return New(d), nil
}

// MustFromString is FromString for literals known to be valid.
func MustFromString(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromFloat builds an amount from a float, rounded to two places.
// Intended for test fixtures and display-layer input only.
func FromFloat(f float64) Money {
	return New(decimal.NewFromFloat(f))
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{m.Decimal.Sub(o.Decimal)}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{m.Decimal.Neg()}
}

// Half returns m / 2 rounded half-up at two places.
func (m Money) Half() Money {
	return Money{m.Decimal.DivRound(two, 2)}
}

// SplitEven returns m / n rounded half-up at two places. Every share of an
// even split gets this same value; the division remainder is absorbed by
// rounding rather than redistributed.
func (m Money) SplitEven(n int) Money {
	return Money{m.Decimal.DivRound(decimal.NewFromInt(int64(n)), 2)}
}

// Percent returns m * p / 100 rounded half-up at two places.
func (m Money) Percent(p decimal.Decimal) Money {
	return Money{m.Decimal.Mul(p).DivRound(hundred, 2)}
}

// Equal reports whether two amounts represent the same value.
func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

// String renders the amount with exactly two fractional digits and a dot
// separator, e.g. "33.33".
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Sum adds a list of amounts with no intermediate rounding.
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
