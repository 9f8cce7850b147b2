package domain

import "github.com/shopspring/decimal"

// Rounding policy: quantities carry two decimal places, currency amounts
// are whole units, percentages carry two decimal places. Round is
// half-away-from-zero, matching ledger conventions.

// RoundQuantity rounds to two decimal places.
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundMoney rounds to a whole currency amount.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// RoundPercent rounds to two decimal places.
func RoundPercent(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SafeDiv divides a by b, returning zero when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Percent returns part/whole × 100 rounded to two places, zero when the
// whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return RoundPercent(part.Div(whole).Mul(decimal.NewFromInt(100)))
}
