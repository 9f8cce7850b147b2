package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/match"
)

func netPurchase(seq int, code, qty, price string, expiry, opDate *time.Time, supplier string) *match.NetRow {
	return &match.NetRow{
		TransactionRow: domain.TransactionRow{
			Seq:           seq,
			MaterialCode:  code,
			MaterialName:  code,
			Quantity:      decimal.RequireFromString(qty),
			UnitPrice:     decimal.RequireFromString(price),
			ExpiryDate:    expiry,
			OperationDate: opDate,
			OperationType: domain.OpPurchase,
			Supplier:      supplier,
			RecordNumber:  "R",
		},
		List: match.ListMain,
	}
}

func opts() EndingOptions {
	return EndingOptions{Today: today, Thresholds: DefaultThresholds()}
}

func TestEndingPrefersSameExpiry(t *testing.T) {
	sameExpiry := date(2026, 6, 1)
	purchases := []*match.NetRow{
		netPurchase(1, "A", "10", "100", date(2026, 3, 1), date(2025, 1, 1), "s1"),
		netPurchase(2, "A", "10", "120", sameExpiry, date(2025, 2, 1), "s2"),
	}
	counted := []domain.CountRow{count(1, "A", "6", sameExpiry)}

	main, secondary := BuildEndingInventory(counted, purchases, opts())
	require.Len(t, main, 1)
	assert.Empty(t, secondary)

	row := main[0]
	assert.Equal(t, "s2", row.Supplier, "same-expiry purchase wins over earlier expiry")
	assert.True(t, row.UnitPrice.Equal(decimal.NewFromInt(120)))
	assert.True(t, row.Total.Equal(decimal.NewFromInt(720)))
	assert.Equal(t, NoteMatchedPurchase, row.Notes)
	assert.True(t, purchases[1].CountQty.Equal(decimal.NewFromInt(6)))
	assert.True(t, purchases[0].CountQty.IsZero())
}

func TestEndingSplitsAcrossPurchaseRecords(t *testing.T) {
	purchases := []*match.NetRow{
		netPurchase(1, "A", "4", "100", date(2026, 3, 1), date(2025, 1, 1), "s1"),
		netPurchase(2, "A", "10", "110", date(2026, 9, 1), date(2025, 2, 1), "s2"),
	}
	counted := []domain.CountRow{count(1, "A", "9", nil)}

	main, secondary := BuildEndingInventory(counted, purchases, opts())
	require.Len(t, main, 2)
	assert.Empty(t, secondary)

	// expiry-ascending: 4 from s1, then 5 from s2
	assert.True(t, main[0].Quantity.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, "s1", main[0].Supplier)
	assert.True(t, main[1].Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "s2", main[1].Supplier)

	assert.Equal(t, 1, main[0].Seq)
	assert.Equal(t, 2, main[1].Seq)
}

func TestEndingUnprovenStockGoesToSecondaryList(t *testing.T) {
	purchases := []*match.NetRow{
		netPurchase(1, "A", "3", "100", nil, date(2025, 1, 1), "s1"),
	}
	counted := []domain.CountRow{
		count(1, "A", "8", nil),
		count(2, "B", "2", nil),
	}

	main, secondary := BuildEndingInventory(counted, purchases, opts())
	require.Len(t, main, 1)
	require.Len(t, secondary, 2)

	assert.True(t, secondary[0].Quantity.Equal(decimal.NewFromInt(5)), "A's unproven remainder")
	assert.Equal(t, NoteBookStock, secondary[0].Notes)
	assert.Equal(t, EndingListUnproven, secondary[0].List)
	assert.Equal(t, "B", secondary[1].MaterialCode)
}

func TestEndingConditionAndAge(t *testing.T) {
	purchases := []*match.NetRow{
		// bought 2025-05-01, expires soon: return-prepared wins over new-item
		netPurchase(1, "A", "5", "200", date(2025, 6, 20), date(2025, 5, 1), "s1"),
		// bought recently with a far expiry: new item
		netPurchase(2, "B", "5", "300", date(2027, 1, 1), date(2025, 5, 15), "s2"),
	}
	counted := []domain.CountRow{
		count(1, "A", "5", date(2025, 6, 20)),
		count(2, "B", "5", date(2027, 1, 1)),
	}

	main, _ := BuildEndingInventory(counted, purchases, opts())
	require.Len(t, main, 2)

	a, b := main[0], main[1]
	assert.Equal(t, ConditionReturnPrepared, a.Condition)
	assert.True(t, a.ReturnPreparedValue.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, ConditionReturnPrepared, a.FinalStatement)
	assert.Equal(t, 31, a.AgeDays)

	assert.Equal(t, ConditionNewItem, b.Condition)
	assert.True(t, b.NewItemQty.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 17, b.AgeDays)
}

func TestEndingMovementTotalsOnFirstRowOnly(t *testing.T) {
	purchases := []*match.NetRow{
		netPurchase(1, "A", "4", "100", date(2026, 3, 1), date(2024, 1, 1), "s1"),
		netPurchase(2, "A", "6", "100", date(2026, 9, 1), date(2024, 2, 1), "s2"),
	}
	counted := []domain.CountRow{count(1, "A", "10", nil)}

	o := opts()
	o.Movement = map[string]MovementInfo{
		"A": {
			Status:     domain.MovementSurplus,
			SoldQty:    decimal.NewFromInt(3),
			IdealQty:   decimal.NewFromInt(4),
			SurplusQty: decimal.NewFromInt(6),
		},
	}

	main, _ := BuildEndingInventory(counted, purchases, o)
	require.Len(t, main, 2)

	first, second := main[0], main[1]
	assert.Equal(t, domain.MovementSurplus, first.MovementStatus)
	assert.True(t, first.SurplusQty.Equal(decimal.NewFromInt(6)))
	assert.True(t, first.SurplusPercent.Equal(decimal.NewFromInt(150)))
	assert.True(t, first.SurplusValue.Equal(decimal.NewFromInt(600)))

	assert.Equal(t, domain.MovementSurplus, second.MovementStatus)
	assert.True(t, second.SurplusQty.IsZero(), "totals not repeated on split rows")
	assert.Equal(t, string(domain.MovementSurplus), second.FinalStatement)
}
