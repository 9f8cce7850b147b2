package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/reconcile"
)

// amountDueFloor is the payable below which an amount actually falls due.
// Small balances inside the floor are treated as settled.
var amountDueFloor = decimal.NewFromInt(-1000)

// PayablesRow settles one supplier's ledger balance against the value of
// their stock still on hand.
type PayablesRow struct {
	Seq         int
	AccountCode string
	Supplier    string
	SubAccount  string

	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Balance decimal.Decimal

	InventoryValue      decimal.Decimal
	SurplusValue        decimal.Decimal
	ExpiryRiskValue     decimal.Decimal
	ReturnPreparedValue decimal.Decimal
	NewItemValue        decimal.Decimal

	Payable   decimal.Decimal
	AmountDue decimal.Decimal
}

// SupplierPayables merges ledger balances with ending-inventory value per
// supplier. Payable is balance plus inventory value; an amount falls due
// only when the payable drops below the floor.
func SupplierPayables(balances []domain.BalanceRow, ending []*reconcile.EndingRow) []PayablesRow {
	type stock struct {
		inventory      decimal.Decimal
		surplus        decimal.Decimal
		expiryRisk     decimal.Decimal
		returnPrepared decimal.Decimal
		newItem        decimal.Decimal
	}
	bySupplier := make(map[string]*stock)
	for _, row := range ending {
		if row.Supplier == "" {
			continue
		}
		s := bySupplier[row.Supplier]
		if s == nil {
			s = &stock{}
			bySupplier[row.Supplier] = s
		}
		s.inventory = s.inventory.Add(row.Total)
		s.surplus = s.surplus.Add(row.SurplusValue)
		s.returnPrepared = s.returnPrepared.Add(row.ReturnPreparedValue)
		s.newItem = s.newItem.Add(row.NewItemValue)
		if row.ExpiryStatus == domain.ExpiryExpired || row.ExpiryStatus == domain.ExpiryVeryNear {
			s.expiryRisk = s.expiryRisk.Add(row.Total)
		}
	}

	out := make([]PayablesRow, 0, len(balances))
	for _, b := range balances {
		row := PayablesRow{
			AccountCode: b.AccountCode,
			Supplier:    b.Supplier,
			SubAccount:  b.SubAccount,
			Debit:       b.Debit,
			Credit:      b.Credit,
			Balance:     b.Balance(),
		}
		if s := bySupplier[b.Supplier]; s != nil {
			row.InventoryValue = s.inventory
			row.SurplusValue = s.surplus
			row.ExpiryRiskValue = s.expiryRisk
			row.ReturnPreparedValue = s.returnPrepared
			row.NewItemValue = s.newItem
		}

		row.Payable = row.Balance.Add(row.InventoryValue)
		if row.Payable.LessThan(amountDueFloor) {
			row.AmountDue = row.Payable.Abs()
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Supplier < out[j].Supplier })
	for i := range out {
		out[i].Seq = i + 1
	}
	return out
}
