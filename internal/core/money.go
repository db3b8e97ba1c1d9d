// Package core provides money parsing and handling utilities.
//
// Monetary values are stored and transported as integer cents to avoid
// floating-point drift; parsing and formatting happen only at the edges.
package core

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary value in cents. Transaction amounts may be negative;
// user balances and goal prices are non-negative by convention but this is
// not enforced here.
type Money int64

// ErrInvalidAmount is returned when a string cannot be read as a monetary
// amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseCents converts a decimal string to signed cents with half-up rounding
// on the third decimal place. Both dot (12.34) and comma (12,34) decimal
// separators are accepted; a leading + or - sets the sign.
//
// Examples:
//
//	ParseCents("12.34")  -> 1234, nil
//	ParseCents("-4.50")  -> -450, nil
//	ParseCents("12.346") -> 1235, nil (rounds up)
//	ParseCents("abc")    -> 0, ErrInvalidAmount
func ParseCents(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		// "." or a bare sign
		return 0, ErrInvalidAmount
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
	// Take the first two fractional digits, then half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return Money(cents), nil
}

// Plain renders the value as an unlocalized two-decimal string with a dot
// separator and no grouping, e.g. -450 -> "-4.50". This is the form used to
// populate edit-form inputs.
func (m Money) Plain() string {
	return strconv.FormatFloat(float64(m)/100, 'f', 2, 64)
}

// Float returns the value in major units for display formatting only.
// Calculations must stay in cents.
func (m Money) Float() float64 {
	return float64(m) / 100
}
