// internal/vin/vin.go

// Package vin validates and normalizes Vehicle Identification Numbers.
// Validation is lenient on purpose: partial VINs down to 11 characters are
// accepted because dealers add vehicles from window etchings and paperwork,
// not just full 17-character plates.
package vin

import (
	"errors"
	"strings"
)

const (
	MinLength = 11
	MaxLength = 17

	// StockNumberLength is how many trailing VIN characters form the stock number.
	StockNumberLength = 4
)

var (
	ErrInvalidCharacters = errors.New("VIN cannot contain the characters I, O, or Q")
	ErrInvalidLength     = errors.New("VIN cannot be less than 11 or exceed 17 characters")
)

// Validate uppercases raw and checks it against the VIN rules. It returns
// the normalized VIN, or one of ErrInvalidCharacters / ErrInvalidLength.
func Validate(raw string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))

	if strings.ContainsAny(normalized, "IOQ") {
		return "", ErrInvalidCharacters
	}

	if len(normalized) < MinLength || len(normalized) > MaxLength {
		return "", ErrInvalidLength
	}

	return normalized, nil
}

// StockNumber derives the stock number from a validated VIN: its trailing
// four characters. Callers store the result at creation time; it is never
// recomputed from the VIN on read.
func StockNumber(vin string) string {
	if len(vin) < StockNumberLength {
		return vin
	}
	return vin[len(vin)-StockNumberLength:]
}
