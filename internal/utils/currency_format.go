package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is the peso sign used on receipts and reports.
const DefaultCurrencySymbol = "₱"

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).StringFixed(int32(precision))
}

// FormatMoney renders an amount with two decimals and thousands separators.
// Example: 1234567.5 with "₱" returns "₱1,234,567.50"
// Example: -300 with "₱" returns "-₱300.00"
func FormatMoney(amount decimal.Decimal, symbol string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	fixed := FormatWithPrecision(amount, 2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + symbol + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
