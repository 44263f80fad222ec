package restaurant

import (
	"strings"

	"github.com/shopspring/decimal"
)

// requireText trims s and rejects it when nothing is left.
func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, "cannot be empty")
	}
	return s, nil
}

func requireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid(field, "cannot be negative")
	}
	return nil
}

func requirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return invalid(field, "must be greater than zero")
	}
	return nil
}
