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

func netPurchase(seq int, code, qty, price string, opDate *time.Time) *match.NetRow {
	return &match.NetRow{
		TransactionRow: domain.TransactionRow{
			Seq:           seq,
			MaterialCode:  code,
			MaterialName:  code,
			Quantity:      decimal.RequireFromString(qty),
			UnitPrice:     decimal.RequireFromString(price),
			OperationDate: opDate,
			OperationType: domain.OpPurchase,
		},
		List: match.ListMain,
	}
}

func TestSalesCostConsumesOldestPurchaseFirst(t *testing.T) {
	purchases := []*match.NetRow{
		netPurchase(1, "A", "5", "120", date(2025, 3, 1)),
		netPurchase(2, "A", "5", "100", date(2025, 1, 1)),
	}
	sales := []*match.NetRow{netSale("A", "6", "200", date(2025, 4, 1))}

	costed := SalesCost(purchases, sales)
	require.Len(t, costed, 1)

	c := costed[0]
	// 5 units at 100 (older) plus 1 at 120
	assert.True(t, c.CostTotal.Equal(decimal.NewFromInt(620)), "got %s", c.CostTotal)
	assert.True(t, c.SaleTotal.Equal(decimal.NewFromInt(1200)))
	assert.True(t, c.Profit.Equal(decimal.NewFromInt(580)))
	assert.Equal(t, StatementProfitable, c.Statement)

	// consumption recorded back onto the purchase rows
	assert.True(t, purchases[1].SoldQty.Equal(decimal.NewFromInt(5)))
	assert.True(t, purchases[0].SoldQty.Equal(decimal.NewFromInt(1)))
}

func TestSalesCostUncostedWhenNoPurchases(t *testing.T) {
	sales := []*match.NetRow{netSale("ZZ", "3", "50", date(2025, 4, 1))}

	costed := SalesCost(nil, sales)
	require.Len(t, costed, 1)
	assert.Equal(t, StatementUncosted, costed[0].Statement)
	assert.True(t, costed[0].CostTotal.IsZero())
	assert.True(t, costed[0].CostedQty.IsZero())
}

func TestSalesCostLosingSale(t *testing.T) {
	purchases := []*match.NetRow{netPurchase(1, "A", "10", "100", date(2025, 1, 1))}
	sales := []*match.NetRow{netSale("A", "2", "80", date(2025, 2, 1))}

	costed := SalesCost(purchases, sales)
	require.Len(t, costed, 1)
	assert.Equal(t, StatementLosing, costed[0].Statement)
	assert.True(t, costed[0].Profit.Equal(decimal.NewFromInt(-40)))
	assert.True(t, costed[0].MarginPercent.Equal(decimal.NewFromInt(-25)))
}

func TestSalesCostSharedPoolAcrossSales(t *testing.T) {
	purchases := []*match.NetRow{netPurchase(1, "A", "5", "100", date(2025, 1, 1))}
	sales := []*match.NetRow{
		netSale("A", "4", "150", date(2025, 2, 1)),
		netSale("A", "3", "150", date(2025, 3, 1)),
	}

	costed := SalesCost(purchases, sales)
	require.Len(t, costed, 2)
	assert.True(t, costed[0].CostedQty.Equal(decimal.NewFromInt(4)))
	assert.True(t, costed[1].CostedQty.Equal(decimal.NewFromInt(1)), "pool exhausts across sales")
	assert.True(t, purchases[0].SoldQty.Equal(decimal.NewFromInt(5)))
}

func TestItemProfitability(t *testing.T) {
	costed := []CostedSale{
		{MaterialCode: "A", MaterialName: "A", Quantity: decimal.NewFromInt(2),
			SaleTotal: decimal.NewFromInt(300), CostTotal: decimal.NewFromInt(200), Profit: decimal.NewFromInt(100)},
		{MaterialCode: "A", MaterialName: "A", Quantity: decimal.NewFromInt(1),
			SaleTotal: decimal.NewFromInt(200), CostTotal: decimal.NewFromInt(100), Profit: decimal.NewFromInt(100)},
		{MaterialCode: "B", MaterialName: "B", Quantity: decimal.NewFromInt(1),
			SaleTotal: decimal.NewFromInt(100), CostTotal: decimal.NewFromInt(50), Profit: decimal.NewFromInt(50)},
	}

	rows := ItemProfitability(costed)
	require.Len(t, rows, 2)

	// sorted by profit descending
	assert.Equal(t, "A", rows[0].MaterialCode)
	assert.True(t, rows[0].Profit.Equal(decimal.NewFromInt(200)))
	assert.True(t, rows[0].MarginPercent.Equal(decimal.NewFromInt(40)))
	assert.True(t, rows[0].ContributionPercent.Equal(decimal.NewFromInt(80)))
	assert.True(t, rows[1].ContributionPercent.Equal(decimal.NewFromInt(20)))
}

func TestItemProfitabilityEmpty(t *testing.T) {
	assert.Empty(t, ItemProfitability(nil))
}
