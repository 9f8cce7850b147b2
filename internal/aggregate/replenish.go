package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/match"
)

// recentPurchaseDays bounds the lookback used when picking the purchase
// record that prices a replenishment suggestion.
const recentPurchaseDays = 120

// targetCoverDays is the stock cover the ideal quantity aims for.
const targetCoverDays = 30

// ReplenishmentRow is one material's restocking suggestion.
type ReplenishmentRow struct {
	Seq           int
	MaterialCode  string
	MaterialName  string
	Unit          string
	OnHandQty     decimal.Decimal
	WindowSoldQty decimal.Decimal
	AvgDailyQty   decimal.Decimal
	CoverDays     decimal.Decimal
	IdealQty      decimal.Decimal
	GapQty        decimal.Decimal
	Urgency       domain.UrgencyStatus
	Supplier      string
	UnitPrice     decimal.Decimal
	GapValue      decimal.Decimal
}

// ReplenishmentGap suggests restocking per material. Ideal stock is the
// larger of the uncovered window demand (rounded up) and thirty days of
// average consumption; urgency follows how many days the current stock
// covers. The pricing record prefers purchases from the last four
// months, then the cheapest, then the largest.
func ReplenishmentGap(counted []domain.CountRow, sales, purchases []*match.NetRow, today time.Time, windowDays int) []ReplenishmentRow {
	if windowDays <= 0 {
		windowDays = 90
	}
	window := decimal.NewFromInt(int64(windowDays))
	cutoff := today.AddDate(0, 0, -windowDays)

	type acc struct {
		row ReplenishmentRow
	}
	items := make(map[string]*acc)
	var codes []string
	get := func(code, name, unit string) *acc {
		a := items[code]
		if a == nil {
			a = &acc{row: ReplenishmentRow{MaterialCode: code}}
			items[code] = a
			codes = append(codes, code)
		}
		if a.row.MaterialName == "" {
			a.row.MaterialName = name
		}
		if a.row.Unit == "" {
			a.row.Unit = unit
		}
		return a
	}

	for _, c := range counted {
		get(c.MaterialCode, c.MaterialName, c.Unit).row.OnHandQty =
			items[c.MaterialCode].row.OnHandQty.Add(c.Quantity)
	}
	for _, s := range sales {
		if s.List != match.ListMain || s.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if s.OperationDate == nil || s.OperationDate.Before(cutoff) || s.OperationDate.After(today) {
			continue
		}
		get(s.MaterialCode, s.MaterialName, s.Unit).row.WindowSoldQty =
			items[s.MaterialCode].row.WindowSoldQty.Add(s.Quantity)
	}

	purchasesByCode := make(map[string][]*match.NetRow)
	for _, p := range purchases {
		if p.List != match.ListMain {
			continue
		}
		purchasesByCode[p.MaterialCode] = append(purchasesByCode[p.MaterialCode], p)
	}

	out := make([]ReplenishmentRow, 0, len(codes))
	for _, code := range codes {
		row := items[code].row
		row.AvgDailyQty = domain.RoundQuantity(domain.SafeDiv(row.WindowSoldQty, window))
		row.CoverDays = domain.RoundQuantity(domain.SafeDiv(row.OnHandQty, row.AvgDailyQty))

		uncovered := row.WindowSoldQty.Sub(row.OnHandQty).Ceil()
		thirtyDay := row.AvgDailyQty.Mul(decimal.NewFromInt(targetCoverDays)).Ceil()
		row.IdealQty = decimal.Max(uncovered, thirtyDay)
		if row.IdealQty.IsNegative() {
			row.IdealQty = decimal.Zero
		}
		row.GapQty = decimal.Max(row.IdealQty.Sub(row.OnHandQty), decimal.Zero)

		switch {
		case row.AvgDailyQty.IsZero():
			row.Urgency = domain.UrgencyDeferred
		case row.CoverDays.LessThanOrEqual(decimal.NewFromInt(30)):
			row.Urgency = domain.UrgencyUrgent
		case row.CoverDays.LessThanOrEqual(decimal.NewFromInt(60)):
			row.Urgency = domain.UrgencyNear
		case row.CoverDays.LessThanOrEqual(decimal.NewFromInt(90)):
			row.Urgency = domain.UrgencyAdequate
		default:
			row.Urgency = domain.UrgencyDeferred
		}

		if pick := pickPurchaseRecord(purchasesByCode[code], today); pick != nil {
			row.Supplier = pick.Supplier
			row.UnitPrice = pick.UnitPrice
			row.GapValue = domain.RoundMoney(row.GapQty.Mul(pick.UnitPrice))
		}

		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MaterialCode < out[j].MaterialCode })
	for i := range out {
		out[i].Seq = i + 1
	}
	return out
}

// pickPurchaseRecord selects the record that prices a suggestion:
// recent purchases first, then minimum price, then maximum quantity.
func pickPurchaseRecord(candidates []*match.NetRow, today time.Time) *match.NetRow {
	if len(candidates) == 0 {
		return nil
	}
	recentCutoff := today.AddDate(0, 0, -recentPurchaseDays)

	pool := make([]*match.NetRow, 0, len(candidates))
	for _, c := range candidates {
		if c.OperationDate != nil && !c.OperationDate.Before(recentCutoff) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = candidates
	}

	best := pool[0]
	for _, c := range pool[1:] {
		switch {
		case c.UnitPrice.LessThan(best.UnitPrice):
			best = c
		case c.UnitPrice.Equal(best.UnitPrice) && c.Quantity.GreaterThan(best.Quantity):
			best = c
		}
	}
	return best
}
