package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRow is a normalized row of the purchases or sales sheet.
// Seq is the 1-based position within the source sheet and is the
// tie-breaker wherever dates collide.
type TransactionRow struct {
	Seq           int
	MaterialCode  string
	MaterialName  string
	Unit          string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	ExpiryDate    *time.Time
	Supplier      string
	OperationDate *time.Time
	OperationType OperationType
	RecordNumber  string
	Notes         string
}

// Total is quantity × unit price rounded to whole currency units.
func (r TransactionRow) Total() decimal.Decimal {
	return RoundMoney(r.Quantity.Mul(r.UnitPrice))
}

// CountRow is a normalized row of the physical-inventory sheet.
type CountRow struct {
	Seq          int
	MaterialCode string
	MaterialName string
	Unit         string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	ExpiryDate   *time.Time
	RecordNumber string
	Notes        string
	List         string
}

// BalanceRow is a normalized row of the supplier-balances sheet.
type BalanceRow struct {
	Seq         int
	AccountCode string
	Supplier    string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	SubAccount  string
}

// Balance is debit − credit, positive when the supplier owes us.
func (r BalanceRow) Balance() decimal.Decimal {
	return r.Debit.Sub(r.Credit)
}

// SameDay reports whether two optional dates fall on the same calendar day.
func SameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns whole days from a to b, negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	at := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bt := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bt.Sub(at).Hours() / 24)
}
