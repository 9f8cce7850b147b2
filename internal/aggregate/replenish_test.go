package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/match"
)

func TestReplenishmentGap(t *testing.T) {
	counted := []domain.CountRow{countRow("A", "10", "0")}
	sales := []*match.NetRow{netSale("A", "90", "20", date(2025, 5, 1))}
	purchases := []*match.NetRow{netPurchase(1, "A", "50", "15", date(2025, 4, 1))}

	rows := ReplenishmentGap(counted, sales, purchases, today, 90)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.True(t, r.AvgDailyQty.Equal(decimal.NewFromInt(1)), "90 sold over 90 days")
	assert.True(t, r.CoverDays.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, domain.UrgencyUrgent, r.Urgency)

	// ideal = max(ceil(90-10), ceil(1×30)) = 80; gap = 80-10 = 70
	assert.True(t, r.IdealQty.Equal(decimal.NewFromInt(80)))
	assert.True(t, r.GapQty.Equal(decimal.NewFromInt(70)))
	assert.True(t, r.UnitPrice.Equal(decimal.NewFromInt(15)))
	assert.True(t, r.GapValue.Equal(decimal.NewFromInt(1050)))
}

func TestReplenishmentUrgencyBuckets(t *testing.T) {
	tests := []struct {
		name   string
		onHand string
		want   domain.UrgencyStatus
	}{
		{"cover 30 days", "30", domain.UrgencyUrgent},
		{"cover 60 days", "60", domain.UrgencyNear},
		{"cover 90 days", "90", domain.UrgencyAdequate},
		{"cover beyond 90", "120", domain.UrgencyDeferred},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counted := []domain.CountRow{countRow("A", tt.onHand, "0")}
			sales := []*match.NetRow{netSale("A", "90", "20", date(2025, 5, 1))}
			rows := ReplenishmentGap(counted, sales, nil, today, 90)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].Urgency)
		})
	}
}

func TestReplenishmentNoSalesIsDeferred(t *testing.T) {
	counted := []domain.CountRow{countRow("A", "5", "0")}
	rows := ReplenishmentGap(counted, nil, nil, today, 90)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.UrgencyDeferred, rows[0].Urgency)
	assert.True(t, rows[0].GapQty.IsZero())
}

func TestPickPurchaseRecord(t *testing.T) {
	old := netPurchase(1, "A", "100", "5", date(2024, 1, 1))
	recentCheap := netPurchase(2, "A", "10", "8", date(2025, 5, 1))
	recentBig := netPurchase(3, "A", "40", "8", date(2025, 4, 1))
	recentPricey := netPurchase(4, "A", "60", "12", date(2025, 5, 15))

	// recent window beats the old record even though it is cheapest
	pick := pickPurchaseRecord([]*match.NetRow{old, recentPricey, recentCheap, recentBig}, today)
	require.NotNil(t, pick)
	assert.Equal(t, 3, pick.Seq, "min price within the window, then max quantity")

	// with only stale records the whole history is the pool
	pick = pickPurchaseRecord([]*match.NetRow{old}, today)
	require.NotNil(t, pick)
	assert.Equal(t, 1, pick.Seq)

	assert.Nil(t, pickPurchaseRecord(nil, today))
}
