package match

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/index"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func forward(seq int, code, supplier, qty string, opDate *time.Time) domain.TransactionRow {
	q, _ := decimal.NewFromString(qty)
	return domain.TransactionRow{
		Seq: seq, MaterialCode: code, Supplier: supplier, Quantity: q,
		OperationDate: opDate, OperationType: domain.OpPurchase,
	}
}

func ret(seq int, code, supplier, qty string) domain.TransactionRow {
	q, _ := decimal.NewFromString(qty)
	return domain.TransactionRow{
		Seq: seq, MaterialCode: code, Supplier: supplier, Quantity: q,
		OperationType: domain.OpPurchaseReturn,
	}
}

func buildIndex(rows ...domain.TransactionRow) *index.Index {
	ix := index.New()
	ix.AddChunk(rows)
	return ix
}

func TestExactMatchOnCodeAndSupplier(t *testing.T) {
	ix := buildIndex(
		forward(1, "A", "s1", "10", date(2025, 1, 1)),
		forward(2, "A", "s2", "10", date(2025, 1, 2)),
	)
	m := New(ix)
	m.ProcessChunk([]domain.TransactionRow{ret(3, "A", "s2", "10")})

	recs := m.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, domain.MatchMatched, recs[0].Status)
	assert.Equal(t, KeyCodeSupplier, recs[0].KeyUsed)
	assert.Equal(t, []int{2}, recs[0].MatchedSeqs)
	assert.Empty(t, m.Orphans())

	// s1's stock untouched
	assert.True(t, ix.ByCodeSupplier("A", "s1")[0].Remaining.Equal(decimal.NewFromInt(10)))
	assert.True(t, ix.ByCodeSupplier("A", "s2")[0].Remaining.IsZero())
}

func TestSecondPhaseWidensToCodeOnly(t *testing.T) {
	ix := buildIndex(forward(1, "A", "s1", "10", date(2025, 1, 1)))
	m := New(ix)
	m.ProcessChunk([]domain.TransactionRow{ret(2, "A", "unknown-supplier", "4")})

	recs := m.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, domain.MatchMatched, recs[0].Status)
	assert.Equal(t, KeyCodeOnly, recs[0].KeyUsed)
}

func TestFIFOConsumesOldestFirst(t *testing.T) {
	// newest row first in the sheet; FIFO must still take the oldest
	ix := buildIndex(
		forward(1, "A", "s1", "6", date(2025, 3, 1)),
		forward(2, "A", "s1", "6", date(2025, 1, 1)),
	)
	m := New(ix)
	m.ProcessChunk([]domain.TransactionRow{ret(3, "A", "s1", "8")})

	recs := m.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, domain.MatchMatched, recs[0].Status)
	assert.Equal(t, []int{2, 1}, recs[0].MatchedSeqs)
	assert.True(t, ix.ByCode("A")[1].Remaining.IsZero(), "oldest fully consumed")
	assert.True(t, ix.ByCode("A")[0].Remaining.Equal(decimal.NewFromInt(4)))
}

func TestSameDateTieBreaksOnSheetOrder(t *testing.T) {
	ix := buildIndex(
		forward(1, "A", "s1", "5", date(2025, 1, 1)),
		forward(2, "A", "s1", "5", date(2025, 1, 1)),
	)
	m := New(ix)
	m.ProcessChunk([]domain.TransactionRow{ret(3, "A", "s1", "5")})

	assert.Equal(t, []int{1}, m.Records()[0].MatchedSeqs)
}

func TestUndatedCandidatesSortLast(t *testing.T) {
	ix := buildIndex(
		forward(1, "A", "s1", "5", nil),
		forward(2, "A", "s1", "5", date(2025, 6, 1)),
	)
	m := New(ix)
	m.ProcessChunk([]domain.TransactionRow{ret(3, "A", "s1", "5")})

	assert.Equal(t, []int{2}, m.Records()[0].MatchedSeqs)
}

func TestOrphanReturn(t *testing.T) {
	m := New(buildIndex())
	m.ProcessChunk([]domain.TransactionRow{ret(1, "ZZ", "s1", "3")})

	recs := m.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, domain.MatchOrphan, recs[0].Status)
	assert.Equal(t, KeyNone, recs[0].KeyUsed)

	orphans := m.Orphans()
	require.Len(t, orphans, 1)
	assert.True(t, orphans[0].Quantity.Equal(decimal.NewFromInt(-3)),
		"orphan carries negative quantity, got %s", orphans[0].Quantity)
}

func TestPartialMatchLeavesFragment(t *testing.T) {
	ix := buildIndex(forward(1, "A", "s1", "4", date(2025, 1, 1)))
	m := New(ix)
	m.ProcessChunk([]domain.TransactionRow{ret(2, "A", "s1", "10")})

	rec := m.Records()[0]
	assert.Equal(t, domain.MatchPartial, rec.Status)
	assert.True(t, rec.Consumed.Equal(decimal.NewFromInt(4)))
	assert.True(t, rec.Remaining.Equal(decimal.NewFromInt(6)))

	orphans := m.Orphans()
	require.Len(t, orphans, 1)
	assert.True(t, orphans[0].Quantity.Equal(decimal.NewFromInt(-6)))
}

func TestConsumedPlusRemainingEqualsReturnQuantity(t *testing.T) {
	ix := buildIndex(
		forward(1, "A", "s1", "3.25", date(2025, 1, 1)),
		forward(2, "A", "s2", "1.5", date(2025, 1, 2)),
	)
	m := New(ix)
	m.ProcessChunk([]domain.TransactionRow{
		ret(3, "A", "s1", "2"),
		ret(4, "A", "s9", "4"),
		ret(5, "B", "s1", "1"),
	})

	for _, rec := range m.Records() {
		assert.True(t, rec.Consumed.Add(rec.Remaining).Equal(rec.Return.Quantity.Abs()),
			"record for seq %d must conserve quantity", rec.Return.Seq)
	}
}

func TestBuildNetConservation(t *testing.T) {
	ix := buildIndex(
		forward(1, "A", "s1", "10", date(2025, 2, 1)),
		forward(2, "A", "s1", "5", date(2025, 1, 1)),
		forward(3, "B", "s2", "7", date(2025, 1, 15)),
	)
	m := New(ix)
	m.ProcessChunk([]domain.TransactionRow{
		ret(4, "A", "s1", "6"),
		ret(5, "C", "s1", "2"),
	})

	net := BuildNet(ix, m.Orphans())

	// forward total 22, returns consumed 6, orphan -2
	sum := decimal.Zero
	for _, row := range net {
		sum = sum.Add(row.Quantity)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(14)), "net sums to 22-6-2, got %s", sum)

	// oldest-dated remainder comes first, orphans last
	require.Len(t, net, 3)
	assert.Equal(t, "B", net[len(net)-1].List)
	assert.Equal(t, NoteOrphan, net[len(net)-1].Notes)
	for i, row := range net {
		assert.Equal(t, i+1, row.Seq, "net rows are re-sequenced")
	}

	// A's oldest row (5 units) was fully consumed by FIFO and drops out;
	// the newer row keeps 9 of 10
	assert.Equal(t, "B", net[0].MaterialCode)
	assert.Equal(t, "A", net[1].MaterialCode)
	assert.True(t, net[1].Quantity.Equal(decimal.NewFromInt(9)))
	assert.True(t, net[1].ReturnedQty.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, NoteReturned, net[1].Notes)
}

func TestZeroQuantityReturnMatchesTrivially(t *testing.T) {
	m := New(buildIndex())
	m.ProcessChunk([]domain.TransactionRow{ret(1, "A", "s1", "0")})

	assert.Equal(t, domain.MatchMatched, m.Records()[0].Status)
	assert.Empty(t, m.Orphans())
}
