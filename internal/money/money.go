package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// ParseAmount converts a user-entered rupee string like "2500" or "1234.50"
// to paise as int64. At most two fractional digits are allowed and the value
// must be non-negative.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole = s[:i]
		frac = s[i+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return 0, ErrInvalidAmount
		}
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: more than 2 decimal places", ErrInvalidAmount)
	}

	var rupees int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		rupees = v
	}
	// int64 max paise ~9.2e18 => rupees max ~9e16
	if rupees > 9e16 {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}

	paise := rupees * 100
	if frac != "" {
		// ParseInt alone would admit a signed fraction like "1.-5".
		for i := 0; i < len(frac); i++ {
			if frac[i] < '0' || frac[i] > '9' {
				return 0, ErrInvalidAmount
			}
		}
		v, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		if len(frac) == 1 {
			v *= 10
		}
		paise += v
	}
	return paise, nil
}

// FormatPaise renders paise as a decimal rupee string like "1234.50".
func FormatPaise(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}

// RupeesToPaise converts an integral rupee amount to paise.
func RupeesToPaise(rupees int64) int64 {
	return rupees * 100
}
