package shopping

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrInvalidAmount is returned when input does not start with a base-10 integer
	ErrInvalidAmount = errors.New("amount is not a number")

	// ErrNegativeAmount is returned for amounts below zero
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// ParseAmount converts user input into an item amount.
//
// The input is trimmed and its leading integer (optional sign followed by
// decimal digits) is parsed. Anything after the digits is ignored, so "12abc"
// yields 12. Empty input, input without leading digits, negative values and
// values that do not fit an int are rejected.
func ParseAmount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	return parseDigits(s[:leadingIntegerLen(s)])
}

// ParseAmountStrict is ParseAmount without trailing-character tolerance.
func ParseAmountStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || leadingIntegerLen(s) != len(s) {
		return 0, ErrInvalidAmount
	}
	return parseDigits(s)
}

// ValidAmount reports whether s parses with ParseAmount.
func ValidAmount(s string) bool {
	_, err := ParseAmount(s)
	return err == nil
}

func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalidAmount
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if n < 0 {
		return 0, ErrNegativeAmount
	}
	return n, nil
}

// leadingIntegerLen returns the length of the sign+digits prefix of s, or 0
// when s has no digits after the optional sign.
func leadingIntegerLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	return i
}
