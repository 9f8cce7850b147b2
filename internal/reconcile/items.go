package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// ItemSummary reconciles one material's book stock against its count.
type ItemSummary struct {
	MaterialCode string
	MaterialName string
	Unit         string

	PurchasedQty      decimal.Decimal
	PurchaseReturnQty decimal.Decimal
	SoldQty           decimal.Decimal
	SaleReturnQty     decimal.Decimal
	ExpectedQty       decimal.Decimal
	PhysicalQty       decimal.Decimal
	DeltaQty          decimal.Decimal

	UnitPrice    decimal.Decimal
	LastPurchase *time.Time
	AgeDays      int
	ExpiryStatus domain.ExpiryStatus

	Status       domain.ItemStatus
	SurplusQty   decimal.Decimal
	SurplusValue decimal.Decimal
	NeedQty      decimal.Decimal
	NeedValue    decimal.Decimal
}

type itemAccumulator struct {
	summary    ItemSummary
	hasCount   bool
	nearExpiry *time.Time
}

// ReconcileItems compares, per material, expected book stock
// (purchases − purchase returns − sales + sale returns) with the
// physical count. Differences within the tolerance are normal; larger
// ones are surplus or need. Materials only recently purchased, or
// counted without any purchase history, report as new items; stock whose
// nearest expiry has passed reports as expired.
func ReconcileItems(transactions []domain.TransactionRow, counts []domain.CountRow, today time.Time, th Thresholds) []ItemSummary {
	items := make(map[string]*itemAccumulator)
	var codes []string

	get := func(code, name, unit string) *itemAccumulator {
		acc := items[code]
		if acc == nil {
			acc = &itemAccumulator{summary: ItemSummary{MaterialCode: code, AgeDays: -1}}
			items[code] = acc
			codes = append(codes, code)
		}
		if acc.summary.MaterialName == "" {
			acc.summary.MaterialName = name
		}
		if acc.summary.Unit == "" {
			acc.summary.Unit = unit
		}
		return acc
	}

	for _, tx := range transactions {
		acc := get(tx.MaterialCode, tx.MaterialName, tx.Unit)
		s := &acc.summary
		qty := tx.Quantity.Abs()
		switch tx.OperationType {
		case domain.OpPurchase:
			s.PurchasedQty = s.PurchasedQty.Add(qty)
			if tx.OperationDate != nil && (s.LastPurchase == nil || tx.OperationDate.After(*s.LastPurchase)) {
				s.LastPurchase = tx.OperationDate
				s.UnitPrice = tx.UnitPrice
			}
		case domain.OpPurchaseReturn:
			s.PurchaseReturnQty = s.PurchaseReturnQty.Add(qty)
		case domain.OpSale:
			s.SoldQty = s.SoldQty.Add(qty)
		case domain.OpSaleReturn:
			s.SaleReturnQty = s.SaleReturnQty.Add(qty)
		}
	}

	for _, count := range counts {
		acc := get(count.MaterialCode, count.MaterialName, count.Unit)
		acc.hasCount = true
		acc.summary.PhysicalQty = acc.summary.PhysicalQty.Add(count.Quantity)
		if acc.summary.UnitPrice.IsZero() {
			acc.summary.UnitPrice = count.UnitPrice
		}
		if count.ExpiryDate != nil && (acc.nearExpiry == nil || count.ExpiryDate.Before(*acc.nearExpiry)) {
			acc.nearExpiry = count.ExpiryDate
		}
	}

	out := make([]ItemSummary, 0, len(codes))
	for _, code := range codes {
		acc := items[code]
		s := acc.summary

		s.ExpectedQty = s.PurchasedQty.Sub(s.PurchaseReturnQty).Sub(s.SoldQty).Add(s.SaleReturnQty)
		s.DeltaQty = s.PhysicalQty.Sub(s.ExpectedQty)
		if s.LastPurchase != nil {
			s.AgeDays = domain.DaysBetween(*s.LastPurchase, today)
		}
		s.ExpiryStatus = th.ClassifyExpiry(today, acc.nearExpiry)

		noHistory := s.PurchasedQty.IsZero() && s.SoldQty.IsZero()
		switch {
		case acc.hasCount && acc.nearExpiry != nil && acc.nearExpiry.Before(today):
			s.Status = domain.ItemExpired
		case acc.hasCount && noHistory:
			s.Status = domain.ItemNew
		case s.DeltaQty.GreaterThan(th.Tolerance):
			s.Status = domain.ItemSurplus
			s.SurplusQty = domain.RoundQuantity(s.DeltaQty)
			s.SurplusValue = domain.RoundMoney(s.SurplusQty.Mul(s.UnitPrice))
		case s.DeltaQty.Neg().GreaterThan(th.Tolerance):
			s.Status = domain.ItemNeed
			s.NeedQty = domain.RoundQuantity(s.DeltaQty.Neg())
			s.NeedValue = domain.RoundMoney(s.NeedQty.Mul(s.UnitPrice))
		case th.IsNewItem(today, s.LastPurchase):
			s.Status = domain.ItemNew
		default:
			s.Status = domain.ItemNormal
		}

		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MaterialCode < out[j].MaterialCode })
	return out
}
