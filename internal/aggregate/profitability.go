package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// ProfitRow totals one material's costed sales.
type ProfitRow struct {
	Seq                 int
	MaterialCode        string
	MaterialName        string
	Unit                string
	SoldQty             decimal.Decimal
	Revenue             decimal.Decimal
	Cost                decimal.Decimal
	Profit              decimal.Decimal
	MarginPercent       decimal.Decimal
	ContributionPercent decimal.Decimal
}

// ItemProfitability groups costed sales per material and computes each
// material's share of the grand profit.
func ItemProfitability(costed []CostedSale) []ProfitRow {
	items := make(map[string]*ProfitRow)
	var codes []string

	for _, c := range costed {
		row := items[c.MaterialCode]
		if row == nil {
			row = &ProfitRow{MaterialCode: c.MaterialCode, MaterialName: c.MaterialName, Unit: c.Unit}
			items[c.MaterialCode] = row
			codes = append(codes, c.MaterialCode)
		}
		row.SoldQty = row.SoldQty.Add(c.Quantity)
		row.Revenue = row.Revenue.Add(c.SaleTotal)
		row.Cost = row.Cost.Add(c.CostTotal)
		row.Profit = row.Profit.Add(c.Profit)
	}

	grandProfit := decimal.Zero
	for _, code := range codes {
		grandProfit = grandProfit.Add(items[code].Profit)
	}

	out := make([]ProfitRow, 0, len(codes))
	for _, code := range codes {
		row := *items[code]
		row.MarginPercent = domain.Percent(row.Profit, row.Revenue)
		row.ContributionPercent = domain.Percent(row.Profit, grandProfit)
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Profit.GreaterThan(out[j].Profit)
	})
	for i := range out {
		out[i].Seq = i + 1
	}
	return out
}
