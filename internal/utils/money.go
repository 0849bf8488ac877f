package utils

import "github.com/shopspring/decimal"

// FormatMoney renders d with two decimals behind the currency symbol, sign
// first: "-$12.50".
func FormatMoney(currency string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + currency + d.Abs().StringFixed(2)
	}
	return currency + d.StringFixed(2)
}

// ParseMoney parses a user-entered amount, ignoring a leading currency symbol.
func ParseMoney(currency, s string) (decimal.Decimal, error) {
	if currency != "" && len(s) > len(currency) && s[:len(currency)] == currency {
		s = s[len(currency):]
	}
	return decimal.NewFromString(s)
}
