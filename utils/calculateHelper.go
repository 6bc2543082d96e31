package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var decimalOneHundred = decimal.NewFromInt(100)

// Round2 rounds a money amount to 2 decimal places (half-up).
// Every intermediate total in the pricing pipeline goes through this, not only
// the final amount, so stored totals never drift from what the form displayed.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// CalculatePercentAmount returns base * percent / 100, rounded to 2 decimal places.
// No clamping here: range checks on percent inputs belong to the input surface.
func CalculatePercentAmount(base decimal.Decimal, percent decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(percent).Div(decimalOneHundred))
}

// ParseAmount converts raw form input into a money amount.
// Blank or non-numeric input coerces to zero; the calculators are total over
// their numeric domain and never fail on a bad money/quantity field.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
