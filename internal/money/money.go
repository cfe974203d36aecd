// Package money provides fixed-point monetary values stored as integer cents.
package money

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidAmount indicates a monetary string that cannot be parsed.
var ErrInvalidAmount = errors.New("money: invalid amount")

// Cents is a monetary value in hundredths of the base currency unit.
type Cents int64

// ParseCents converts a decimal string to cents with half-up rounding on the
// third decimal place. Both dot and comma separators are accepted. Negative
// values are rejected; monetary inputs in Meridian are always magnitudes.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
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
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	return Cents(iv*100 + frac), nil
}

// BasisPoints returns v scaled by bp basis points (1 bp = 0.01%), rounded
// half-up at the cent. The receiver must be non-negative.
func (c Cents) BasisPoints(bp int64) Cents {
	return Cents((int64(c)*bp + 5000) / 10000)
}

// Float64 returns the value in base currency units for display only.
// All arithmetic stays in cents.
func (c Cents) Float64() float64 {
	return float64(c) / 100.0
}

// String renders the value as a plain decimal, e.g. "1234.50".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + strconv.FormatInt(v/100, 10) + "." + pad2(v%100)
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}
