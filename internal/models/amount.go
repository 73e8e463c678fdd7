package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a string amount into a decimal, tolerating common
// formatting found in imported data: comma decimal separators, currency
// symbols, spaces and apostrophe thousand separators.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "'", "")
	for _, sym := range []string{"CHF", "EUR", "USD", "PLN", "$", "€"} {
		amount = strings.ReplaceAll(amount, sym, "")
	}
	amount = strings.ReplaceAll(amount, ",", ".")

	return decimal.NewFromString(amount)
}
