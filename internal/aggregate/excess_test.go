package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/match"
)

var today = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func countRow(code, qty, price string) domain.CountRow {
	return domain.CountRow{
		MaterialCode: code, MaterialName: code,
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
	}
}

func netSale(code, qty, price string, opDate *time.Time) *match.NetRow {
	return &match.NetRow{
		TransactionRow: domain.TransactionRow{
			MaterialCode: code, MaterialName: code,
			Quantity:      decimal.RequireFromString(qty),
			UnitPrice:     decimal.RequireFromString(price),
			OperationDate: opDate,
			OperationType: domain.OpSale,
		},
		List: match.ListMain,
	}
}

func TestExcessInventoryStatuses(t *testing.T) {
	counted := []domain.CountRow{
		countRow("STAG", "10", "100"),
		countRow("NEED", "2", "50"),
		countRow("SUR", "9", "20"),
		countRow("ADQ", "5", "10"),
	}
	sales := []*match.NetRow{
		netSale("NEED", "6", "60", date(2025, 5, 1)),
		netSale("SUR", "4", "25", date(2025, 5, 10)),
		netSale("ADQ", "5", "12", date(2025, 4, 20)),
	}

	rows := ExcessInventory(counted, sales, today, 90)
	byCode := map[string]ExcessRow{}
	for _, r := range rows {
		byCode[r.MaterialCode] = r
	}
	require.Len(t, byCode, 4)

	stag := byCode["STAG"]
	assert.Equal(t, domain.MovementStagnant, stag.Status)
	assert.True(t, stag.SurplusQty.Equal(decimal.NewFromInt(10)))
	assert.True(t, stag.SurplusValue.Equal(decimal.NewFromInt(1000)))

	need := byCode["NEED"]
	assert.Equal(t, domain.MovementNeed, need.Status)
	assert.True(t, need.NeedQty.Equal(decimal.NewFromInt(4)))

	sur := byCode["SUR"]
	assert.Equal(t, domain.MovementSurplus, sur.Status)
	assert.True(t, sur.SurplusQty.Equal(decimal.NewFromInt(5)))

	assert.Equal(t, domain.MovementAdequate, byCode["ADQ"].Status)
}

func TestExcessInventoryIgnoresSalesOutsideWindow(t *testing.T) {
	counted := []domain.CountRow{countRow("A", "5", "10")}
	sales := []*match.NetRow{
		netSale("A", "3", "12", date(2025, 1, 1)), // 151 days back
		netSale("A", "2", "12", nil),              // undated
	}

	rows := ExcessInventory(counted, sales, today, 90)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].SoldQty.IsZero())
	assert.Equal(t, domain.MovementStagnant, rows[0].Status)
}

func TestExcessInventoryEmptyInputs(t *testing.T) {
	assert.Empty(t, ExcessInventory(nil, nil, today, 90))
}
