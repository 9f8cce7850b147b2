package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/reconcile"
)

func balance(supplier, debit, credit string) domain.BalanceRow {
	return domain.BalanceRow{
		Supplier: supplier,
		Debit:    decimal.RequireFromString(debit),
		Credit:   decimal.RequireFromString(credit),
	}
}

func endingRow(supplier, total string, expiry domain.ExpiryStatus) *reconcile.EndingRow {
	return &reconcile.EndingRow{
		Supplier:     supplier,
		Total:        decimal.RequireFromString(total),
		ExpiryStatus: expiry,
	}
}

func TestSupplierPayables(t *testing.T) {
	balances := []domain.BalanceRow{
		balance("acme", "1000", "8000"),   // balance -7000
		balance("beta", "5000", "4000"),   // balance +1000
		balance("gamma", "100", "1500"),   // balance -1400, no stock
	}
	ending := []*reconcile.EndingRow{
		endingRow("acme", "2000", domain.ExpiryFar),
		endingRow("acme", "500", domain.ExpiryExpired),
		endingRow("beta", "300", domain.ExpiryNear),
	}

	rows := SupplierPayables(balances, ending)
	require.Len(t, rows, 3)
	byName := map[string]PayablesRow{}
	for _, r := range rows {
		byName[r.Supplier] = r
	}

	acme := byName["acme"]
	assert.True(t, acme.Balance.Equal(decimal.NewFromInt(-7000)))
	assert.True(t, acme.InventoryValue.Equal(decimal.NewFromInt(2500)))
	assert.True(t, acme.ExpiryRiskValue.Equal(decimal.NewFromInt(500)))
	assert.True(t, acme.Payable.Equal(decimal.NewFromInt(-4500)))
	assert.True(t, acme.AmountDue.Equal(decimal.NewFromInt(4500)), "payable below the floor falls due")

	beta := byName["beta"]
	assert.True(t, beta.Payable.Equal(decimal.NewFromInt(1300)))
	assert.True(t, beta.AmountDue.IsZero())

	gamma := byName["gamma"]
	assert.True(t, gamma.InventoryValue.IsZero())
	assert.True(t, gamma.Payable.Equal(decimal.NewFromInt(-1400)))
	assert.True(t, gamma.AmountDue.Equal(decimal.NewFromInt(1400)))
}

func TestSupplierPayablesFloorBoundary(t *testing.T) {
	rows := SupplierPayables([]domain.BalanceRow{balance("edge", "0", "1000")}, nil)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].AmountDue.IsZero(), "payable exactly at the floor is not yet due")
}

func TestSupplierPayablesEmpty(t *testing.T) {
	assert.Empty(t, SupplierPayables(nil, nil))
}
