package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// TurnoverRow measures how quickly one material's stock moves.
type TurnoverRow struct {
	Seq          int
	MaterialCode string
	MaterialName string
	Unit         string
	SoldQty      decimal.Decimal
	OnHandQty    decimal.Decimal
	AvgInventory decimal.Decimal
	TurnoverRate decimal.Decimal
	DaysOfSupply decimal.Decimal
}

// Turnover derives turnover rate and days of supply from counted stock
// and window sales. Average inventory approximates on-hand plus half the
// window's sold quantity.
func Turnover(counted []domain.CountRow, excess []ExcessRow, windowDays int) []TurnoverRow {
	if windowDays <= 0 {
		windowDays = 90
	}
	window := decimal.NewFromInt(int64(windowDays))
	two := decimal.NewFromInt(2)

	onHand := make(map[string]decimal.Decimal)
	for _, c := range counted {
		onHand[c.MaterialCode] = onHand[c.MaterialCode].Add(c.Quantity)
	}

	out := make([]TurnoverRow, 0, len(excess))
	for _, e := range excess {
		row := TurnoverRow{
			MaterialCode: e.MaterialCode,
			MaterialName: e.MaterialName,
			Unit:         e.Unit,
			SoldQty:      e.SoldQty,
			OnHandQty:    onHand[e.MaterialCode],
		}
		row.AvgInventory = domain.RoundQuantity(row.OnHandQty.Add(domain.SafeDiv(row.SoldQty, two)))
		row.TurnoverRate = domain.RoundQuantity(domain.SafeDiv(row.SoldQty, row.AvgInventory))

		dailySales := domain.SafeDiv(row.SoldQty, window)
		row.DaysOfSupply = domain.RoundQuantity(domain.SafeDiv(row.OnHandQty, dailySales))
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TurnoverRate.GreaterThan(out[j].TurnoverRate)
	})
	for i := range out {
		out[i].Seq = i + 1
	}
	return out
}
