// Package core holds the ledger domain: fixed-point money, calendar dates,
// transactions and the reporting queries computed over them.
//
// Money stores an integer count of cents. All arithmetic is plain int64
// arithmetic on cents; overflow is not checked (int64 cents covers roughly
// 92 quadrillion units, far beyond any realistic ledger).
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an immutable fixed-point monetary value in cents.
type Money struct {
	Cents int64
}

var (
	ErrInvalidCents   = errors.New("cent part out of range")
	ErrDivisionByZero = errors.New("division by zero")
)

// New builds a Money from whole units and a cent part in [0, 99].
// When units is negative the cent part is subtracted, so New(-5, 25)
// represents -5.25 rather than -4.75.
func New(units, cents int64) (Money, error) {
	if cents < 0 || cents > 99 {
		return Money{}, ErrInvalidCents
	}
	if units < 0 {
		return Money{Cents: units*100 - cents}, nil
	}
	return Money{Cents: units*100 + cents}, nil
}

// FromCents builds a Money directly from a raw cent count.
func FromCents(cents int64) Money {
	return Money{Cents: cents}
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// Mul scales the value by an integer factor.
func (m Money) Mul(n int64) Money { return Money{Cents: m.Cents * n} }

// Div divides the value by an integer divisor, truncating toward zero.
// The remainder is discarded: 100.00 / 3 = 33.33.
func (m Money) Div(n int64) (Money, error) {
	if n == 0 {
		return Money{}, ErrDivisionByZero
	}
	return Money{Cents: m.Cents / n}, nil
}

// Cmp returns -1, 0 or +1 comparing m against o.
func (m Money) Cmp(o Money) int {
	switch {
	case m.Cents < o.Cents:
		return -1
	case m.Cents > o.Cents:
		return 1
	default:
		return 0
	}
}

func (m Money) Equal(o Money) bool          { return m.Cents == o.Cents }
func (m Money) Less(o Money) bool           { return m.Cents < o.Cents }
func (m Money) LessOrEqual(o Money) bool    { return m.Cents <= o.Cents }
func (m Money) Greater(o Money) bool        { return m.Cents > o.Cents }
func (m Money) GreaterOrEqual(o Money) bool { return m.Cents >= o.Cents }

func (m Money) IsNegative() bool { return m.Cents < 0 }
func (m Money) IsZero() bool     { return m.Cents == 0 }

// Units returns the whole-unit part, truncated toward zero. Sign-preserving:
// FromCents(-525).Units() == -5.
func (m Money) Units() int64 {
	return m.Cents / 100
}

// Subunits returns the cent part for display, always in [0, 99].
func (m Money) Subunits() int64 {
	c := m.Cents % 100
	if c < 0 {
		c = -c
	}
	return c
}

// String formats the value as a plain decimal with two digits after the
// point and a single leading minus for negative amounts ("-5.25").
// No currency symbol is printed.
func (m Money) String() string {
	c := m.Cents
	var sign string
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place.
//
// It accepts both dot (12.34) and comma (12,34) separators and an optional
// leading sign, so expenses can be entered as "-55.30". Zero is valid.
//
// Examples:
//
//	ParseDecimalToCents("12.34")  -> 1234, nil
//	ParseDecimalToCents("-12,34") -> -1234, nil
//	ParseDecimalToCents("12.345") -> 1234, nil (rounds down)
//	ParseDecimalToCents("12.346") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" {
		return 0, ErrInvalidAmount
	}

	// Split into integer and fractional part
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return cents, nil
}
