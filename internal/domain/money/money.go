// Package money holds amounts as integer cents so sums never drift.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"bodyshop/internal/pkg/errs"
)

var ErrInvalidAmount = errs.Mark(errs.New("invalid money amount"), errs.ErrValidation)

type Money struct {
	cents int64
}

func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// MaxUnits is the largest whole amount a NUMERIC(10,2) column holds.
const MaxUnits = 99_999_999

// Parse accepts "120", "120.5" or "120.50". Signs, exponents and amounts
// above MaxUnits are rejected.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !isDigits(whole) || len(frac) > 2 || (hasFrac && !isDigits(frac)) {
		return Money{}, errs.Wrapf(ErrInvalidAmount, "%q", s)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > MaxUnits {
		return Money{}, errs.Wrapf(ErrInvalidAmount, "%q", s)
	}
	var cents int64
	if hasFrac {
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, errs.Wrapf(ErrInvalidAmount, "%q", s)
		}
	}
	return Money{cents: units*100 + cents}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Times(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

func (m Money) IsNegative() bool { return m.cents < 0 }

// String renders two decimals, e.g. "145.00".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func (m Money) Float64() float64 {
	return float64(m.cents) / 100.0
}
