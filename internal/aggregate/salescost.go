package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/match"
)

// Profitability statements stamped on costed sales.
const (
	StatementProfitable = "profitable"
	StatementLosing     = "losing"
	StatementBreakeven  = "breakeven"
	StatementUncosted   = "uncosted"
)

// CostedSale is one net sale priced against the purchases it consumed.
type CostedSale struct {
	Seq           int
	MaterialCode  string
	MaterialName  string
	Unit          string
	Quantity      decimal.Decimal
	SalePrice     decimal.Decimal
	SaleTotal     decimal.Decimal
	CostedQty     decimal.Decimal
	UnitCost      decimal.Decimal
	CostTotal     decimal.Decimal
	Profit        decimal.Decimal
	MarginPercent decimal.Decimal
	Statement     string
	OperationDate *time.Time
}

type costLot struct {
	purchase  *match.NetRow
	remaining decimal.Decimal
}

// SalesCost prices every net sale against net purchases of the same
// material, consuming the oldest purchase first. Consumed quantity is
// recorded back onto the purchase rows. Sale quantity no purchase can
// cover stays uncosted rather than inventing a cost.
func SalesCost(purchases, sales []*match.NetRow) []CostedSale {
	lots := make(map[string][]*costLot)
	for _, p := range purchases {
		if p.List != match.ListMain || p.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		lots[p.MaterialCode] = append(lots[p.MaterialCode], &costLot{purchase: p, remaining: p.Quantity})
	}
	// oldest purchase first; ties resolve by expiry then sheet order
	for _, ls := range lots {
		sort.SliceStable(ls, func(i, j int) bool {
			a, b := ls[i].purchase, ls[j].purchase
			if !dateEqual(a.OperationDate, b.OperationDate) {
				return dateBefore(a.OperationDate, b.OperationDate)
			}
			if !dateEqual(a.ExpiryDate, b.ExpiryDate) {
				return dateBefore(a.ExpiryDate, b.ExpiryDate)
			}
			return a.Seq < b.Seq
		})
	}

	var out []CostedSale
	for _, s := range sales {
		if s.List != match.ListMain || s.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		costed := CostedSale{
			MaterialCode:  s.MaterialCode,
			MaterialName:  s.MaterialName,
			Unit:          s.Unit,
			Quantity:      s.Quantity,
			SalePrice:     s.UnitPrice,
			SaleTotal:     s.Total(),
			OperationDate: s.OperationDate,
		}

		remaining := s.Quantity
		cost := decimal.Zero
		for _, lot := range lots[s.MaterialCode] {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			if lot.remaining.LessThanOrEqual(decimal.Zero) {
				continue
			}
			taken := remaining
			if lot.remaining.LessThan(remaining) {
				taken = lot.remaining
			}
			lot.remaining = lot.remaining.Sub(taken)
			lot.purchase.SoldQty = lot.purchase.SoldQty.Add(taken)
			remaining = remaining.Sub(taken)
			cost = cost.Add(taken.Mul(lot.purchase.UnitPrice))
			costed.CostedQty = costed.CostedQty.Add(taken)
		}

		costed.CostTotal = domain.RoundMoney(cost)
		if costed.CostedQty.GreaterThan(decimal.Zero) {
			costed.UnitCost = domain.RoundMoney(domain.SafeDiv(cost, costed.CostedQty))
		}
		costed.Profit = costed.SaleTotal.Sub(costed.CostTotal)
		costed.MarginPercent = domain.Percent(costed.Profit, costed.SaleTotal)

		switch {
		case costed.CostedQty.IsZero():
			costed.Statement = StatementUncosted
		case costed.Profit.GreaterThan(decimal.Zero):
			costed.Statement = StatementProfitable
		case costed.Profit.LessThan(decimal.Zero):
			costed.Statement = StatementLosing
		default:
			costed.Statement = StatementBreakeven
		}

		out = append(out, costed)
	}

	for i := range out {
		out[i].Seq = i + 1
	}
	return out
}

func dateBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}

func dateEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
