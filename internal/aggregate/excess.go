// Package aggregate folds reconciled rows into the derived reports:
// excess and movement, FIFO sales costing, profitability, ABC
// classification, turnover, replenishment gaps and supplier payables.
// Every fold tolerates empty input and returns an empty slice.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/match"
)

// ExcessRow compares stock on hand with sales inside the lookback
// window for one material.
type ExcessRow struct {
	Seq          int
	MaterialCode string
	MaterialName string
	Unit         string
	OnHandQty    decimal.Decimal
	SoldQty      decimal.Decimal
	IdealQty     decimal.Decimal
	SurplusQty   decimal.Decimal
	NeedQty      decimal.Decimal
	UnitPrice    decimal.Decimal
	SurplusValue decimal.Decimal
	NeedValue    decimal.Decimal
	Status       domain.MovementStatus
}

// ExcessInventory classifies each counted material by comparing stock on
// hand against what the window actually sold: nothing sold and stock held
// is stagnant, stock short of window sales is need, stock beyond them is
// surplus, anything else is adequate.
func ExcessInventory(counted []domain.CountRow, sales []*match.NetRow, today time.Time, windowDays int) []ExcessRow {
	if windowDays <= 0 {
		windowDays = 90
	}
	cutoff := today.AddDate(0, 0, -windowDays)

	type acc struct {
		row ExcessRow
	}
	items := make(map[string]*acc)
	var codes []string

	get := func(code, name, unit string) *acc {
		a := items[code]
		if a == nil {
			a = &acc{row: ExcessRow{MaterialCode: code}}
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
		a := get(c.MaterialCode, c.MaterialName, c.Unit)
		a.row.OnHandQty = a.row.OnHandQty.Add(c.Quantity)
		if a.row.UnitPrice.IsZero() {
			a.row.UnitPrice = c.UnitPrice
		}
	}

	for _, s := range sales {
		if s.List != match.ListMain || s.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if s.OperationDate == nil || s.OperationDate.Before(cutoff) || s.OperationDate.After(today) {
			continue
		}
		a := get(s.MaterialCode, s.MaterialName, s.Unit)
		a.row.SoldQty = a.row.SoldQty.Add(s.Quantity)
		if a.row.UnitPrice.IsZero() {
			a.row.UnitPrice = s.UnitPrice
		}
	}

	out := make([]ExcessRow, 0, len(codes))
	for _, code := range codes {
		row := items[code].row
		row.IdealQty = row.SoldQty

		switch {
		case row.SoldQty.IsZero() && row.OnHandQty.GreaterThan(decimal.Zero):
			row.Status = domain.MovementStagnant
			row.SurplusQty = row.OnHandQty
		case row.OnHandQty.LessThan(row.SoldQty):
			row.Status = domain.MovementNeed
			row.NeedQty = row.SoldQty.Sub(row.OnHandQty)
		case row.OnHandQty.GreaterThan(row.SoldQty):
			row.Status = domain.MovementSurplus
			row.SurplusQty = row.OnHandQty.Sub(row.SoldQty)
		default:
			row.Status = domain.MovementAdequate
		}

		row.SurplusValue = domain.RoundMoney(row.SurplusQty.Mul(row.UnitPrice))
		row.NeedValue = domain.RoundMoney(row.NeedQty.Mul(row.UnitPrice))
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MaterialCode < out[j].MaterialCode })
	for i := range out {
		out[i].Seq = i + 1
	}
	return out
}
