// Package reconcile derives ending inventory from physical counts and
// netted purchases, and reconciles per-material book stock against the
// counted stock.
package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// Thresholds govern expiry classification and item aging. Days are
// measured from the as-of date of the run.
type Thresholds struct {
	ExpiredDays    int
	VeryNearDays   int
	NearDays       int
	NewItemAgeDays int
	Tolerance      decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ExpiredDays:    31,
		VeryNearDays:   181,
		NearDays:       361,
		NewItemAgeDays: 90,
		Tolerance:      decimal.RequireFromString("0.01"),
	}
}

// ClassifyExpiry buckets an expiry date relative to today.
func (t Thresholds) ClassifyExpiry(today time.Time, expiry *time.Time) domain.ExpiryStatus {
	if expiry == nil {
		return domain.ExpiryUnknown
	}
	days := domain.DaysBetween(today, *expiry)
	switch {
	case days <= t.ExpiredDays:
		return domain.ExpiryExpired
	case days <= t.VeryNearDays:
		return domain.ExpiryVeryNear
	case days <= t.NearDays:
		return domain.ExpiryNear
	default:
		return domain.ExpiryFar
	}
}

// IsNewItem reports whether a purchase this recent marks the material as
// newly stocked.
func (t Thresholds) IsNewItem(today time.Time, purchaseDate *time.Time) bool {
	if purchaseDate == nil {
		return false
	}
	age := domain.DaysBetween(*purchaseDate, today)
	return age >= 0 && age <= t.NewItemAgeDays
}
