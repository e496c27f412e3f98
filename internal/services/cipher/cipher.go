// Package cipher implements the Caesar shift cipher.
package cipher

import (
	"errors"
	"strings"
)

// ErrInvalidShift means the shift is outside 1..25.
var ErrInvalidShift = errors.New("shift must be between 1 and 25")

// DefaultShift is used when the caller doesn't pick one.
const DefaultShift = 3

// ValidateShift checks that shift is a usable key.
func ValidateShift(shift int) error {
	if shift < 1 || shift > 25 {
		return ErrInvalidShift
	}
	return nil
}

// Encrypt shifts every ASCII letter forward by shift places, wrapping within
// its own case. Everything else passes through unchanged.
func Encrypt(text string, shift int) (string, error) {
	if err := ValidateShift(shift); err != nil {
		return "", err
	}
	return rotate(text, shift), nil
}

// Decrypt reverses Encrypt for the same shift.
func Decrypt(text string, shift int) (string, error) {
	if err := ValidateShift(shift); err != nil {
		return "", err
	}
	return rotate(text, 26-shift), nil
}

func rotate(text string, shift int) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+rune(shift))%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+rune(shift))%26
		default:
			return r
		}
	}, text)
}
