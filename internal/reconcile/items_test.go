package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmshaban/jard-backend/internal/domain"
)

func tx(code string, op domain.OperationType, qty, price string, opDate *time.Time) domain.TransactionRow {
	return domain.TransactionRow{
		MaterialCode:  code,
		MaterialName:  code,
		Quantity:      decimal.RequireFromString(qty),
		UnitPrice:     decimal.RequireFromString(price),
		OperationDate: opDate,
		OperationType: op,
	}
}

func TestReconcileItems(t *testing.T) {
	oldDate := date(2024, 6, 1)
	recent := date(2025, 5, 20)

	transactions := []domain.TransactionRow{
		// normal: 20 bought, 5 sold, counted 15
		tx("NORM", domain.OpPurchase, "20", "100", oldDate),
		tx("NORM", domain.OpSale, "5", "150", oldDate),
		// surplus: 10 bought, counted 14
		tx("SUR", domain.OpPurchase, "10", "50", oldDate),
		// need: 10 bought, 2 returned to supplier, counted 3
		tx("NEED", domain.OpPurchase, "10", "80", oldDate),
		tx("NEED", domain.OpPurchaseReturn, "2", "80", oldDate),
		// new item: bought 12 days ago
		tx("NEW", domain.OpPurchase, "6", "40", recent),
		// sale returns add back to expected stock
		tx("SRET", domain.OpPurchase, "10", "30", oldDate),
		tx("SRET", domain.OpSale, "4", "45", oldDate),
		tx("SRET", domain.OpSaleReturn, "1", "45", oldDate),
	}
	counts := []domain.CountRow{
		count(1, "NORM", "15", date(2026, 6, 1)),
		count(2, "SUR", "14", date(2026, 6, 1)),
		count(3, "NEED", "3", date(2026, 6, 1)),
		count(4, "NEW", "6", date(2026, 6, 1)),
		count(5, "SRET", "7", date(2026, 6, 1)),
		count(6, "GHOST", "9", date(2026, 6, 1)),
		count(7, "EXP", "2", date(2025, 3, 1)),
	}

	items := ReconcileItems(transactions, counts, today, DefaultThresholds())
	byCode := make(map[string]ItemSummary, len(items))
	for _, it := range items {
		byCode[it.MaterialCode] = it
	}
	require.Len(t, byCode, 7)

	assert.Equal(t, domain.ItemNormal, byCode["NORM"].Status)
	assert.True(t, byCode["NORM"].ExpectedQty.Equal(decimal.NewFromInt(15)))

	sur := byCode["SUR"]
	assert.Equal(t, domain.ItemSurplus, sur.Status)
	assert.True(t, sur.SurplusQty.Equal(decimal.NewFromInt(4)))
	assert.True(t, sur.SurplusValue.Equal(decimal.NewFromInt(200)))

	need := byCode["NEED"]
	assert.Equal(t, domain.ItemNeed, need.Status)
	assert.True(t, need.NeedQty.Equal(decimal.NewFromInt(5)))
	assert.True(t, need.NeedValue.Equal(decimal.NewFromInt(400)))

	assert.Equal(t, domain.ItemNew, byCode["NEW"].Status)
	assert.Equal(t, 12, byCode["NEW"].AgeDays)

	sret := byCode["SRET"]
	assert.Equal(t, domain.ItemNormal, sret.Status)
	assert.True(t, sret.ExpectedQty.Equal(decimal.NewFromInt(7)), "10 - 4 + 1")

	assert.Equal(t, domain.ItemNew, byCode["GHOST"].Status, "counted with no history is a new item")
	assert.Equal(t, domain.ItemExpired, byCode["EXP"].Status)
}

func TestReconcileItemsToleranceBoundary(t *testing.T) {
	th := DefaultThresholds()
	th.Tolerance = decimal.RequireFromString("0.5")

	transactions := []domain.TransactionRow{
		tx("A", domain.OpPurchase, "10", "100", date(2024, 1, 1)),
	}
	counts := []domain.CountRow{count(1, "A", "10.5", date(2026, 6, 1))}

	items := ReconcileItems(transactions, counts, today, th)
	require.Len(t, items, 1)
	assert.Equal(t, domain.ItemNormal, items[0].Status, "delta at the tolerance is still normal")
}

func TestReconcileItemsEmptyInputs(t *testing.T) {
	assert.Empty(t, ReconcileItems(nil, nil, today, DefaultThresholds()))
}

func TestReconcileItemsLatestPriceWins(t *testing.T) {
	transactions := []domain.TransactionRow{
		tx("A", domain.OpPurchase, "5", "100", date(2024, 1, 1)),
		tx("A", domain.OpPurchase, "5", "130", date(2024, 6, 1)),
	}
	items := ReconcileItems(transactions, nil, today, DefaultThresholds())
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(130)))
	assert.NotNil(t, items[0].LastPurchase)
	assert.True(t, items[0].LastPurchase.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
}
