package index

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmshaban/jard-backend/internal/domain"
)

func row(seq int, code, supplier, qty string) domain.TransactionRow {
	q, _ := decimal.NewFromString(qty)
	return domain.TransactionRow{Seq: seq, MaterialCode: code, Supplier: supplier, Quantity: q}
}

func TestAddChunkPreservesOrder(t *testing.T) {
	ix := New()
	ix.AddChunk([]domain.TransactionRow{
		row(1, "A", "s1", "10"),
		row(2, "A", "s2", "5"),
	})
	ix.AddChunk([]domain.TransactionRow{
		row(3, "A", "s1", "7"),
	})

	assert.Equal(t, 3, ix.Len())

	byCode := ix.ByCode("A")
	require.Len(t, byCode, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{byCode[0].Row.Seq, byCode[1].Row.Seq, byCode[2].Row.Seq})

	bySupplier := ix.ByCodeSupplier("A", "s1")
	require.Len(t, bySupplier, 2)
	assert.Equal(t, 1, bySupplier[0].Row.Seq)
	assert.Equal(t, 3, bySupplier[1].Row.Seq)

	assert.Empty(t, ix.ByCode("B"))
	assert.Empty(t, ix.ByCodeSupplier("A", "s3"))
}

func TestSharedCandidatesAcrossKeys(t *testing.T) {
	ix := New()
	ix.AddChunk([]domain.TransactionRow{row(1, "A", "s1", "10")})

	// both lookups must see the same underlying candidate
	ix.ByCodeSupplier("A", "s1")[0].Consume(decimal.NewFromInt(4), 99)
	assert.True(t, ix.ByCode("A")[0].Remaining.Equal(decimal.NewFromInt(6)))
}

func TestConsume(t *testing.T) {
	c := &Candidate{Remaining: decimal.NewFromInt(10)}

	taken := c.Consume(decimal.NewFromInt(4), 1)
	assert.True(t, taken.Equal(decimal.NewFromInt(4)))
	assert.True(t, c.Remaining.Equal(decimal.NewFromInt(6)))

	// over-consume caps at remaining
	taken = c.Consume(decimal.NewFromInt(9), 2)
	assert.True(t, taken.Equal(decimal.NewFromInt(6)))
	assert.True(t, c.Remaining.IsZero())

	// exhausted candidate yields nothing
	taken = c.Consume(decimal.NewFromInt(1), 3)
	assert.True(t, taken.IsZero())

	assert.Equal(t, []int{1, 2}, c.ConsumedBy)
	assert.True(t, c.ReturnedQty.Equal(decimal.NewFromInt(10)))
}
