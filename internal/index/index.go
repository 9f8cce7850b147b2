// Package index builds in-memory lookup structures over forward
// transaction rows so the matcher can find return candidates without
// rescanning the sheet.
package index

import (
	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// Candidate is a forward row with a mutable remaining quantity. The
// matcher decrements Remaining in place as returns consume it.
type Candidate struct {
	Row         domain.TransactionRow
	Remaining   decimal.Decimal
	ConsumedBy  []int // Seq of each return row that consumed from this candidate
	ReturnedQty decimal.Decimal
}

// Consume takes up to qty from the candidate and returns how much was
// actually taken.
func (c *Candidate) Consume(qty decimal.Decimal, returnSeq int) decimal.Decimal {
	if c.Remaining.LessThanOrEqual(decimal.Zero) || qty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	taken := qty
	if c.Remaining.LessThan(qty) {
		taken = c.Remaining
	}
	c.Remaining = c.Remaining.Sub(taken)
	c.ReturnedQty = c.ReturnedQty.Add(taken)
	c.ConsumedBy = append(c.ConsumedBy, returnSeq)
	return taken
}

type codeSupplierKey struct {
	code     string
	supplier string
}

// Index holds candidates under two keys: material code alone, and
// material code plus supplier. Both lists preserve insertion order, which
// follows sheet order because chunks arrive sequentially.
type Index struct {
	byCode         map[string][]*Candidate
	byCodeSupplier map[codeSupplierKey][]*Candidate
	all            []*Candidate
}

func New() *Index {
	return &Index{
		byCode:         make(map[string][]*Candidate),
		byCodeSupplier: make(map[codeSupplierKey][]*Candidate),
	}
}

// AddChunk indexes a chunk of forward rows. Return rows must be filtered
// out by the caller.
func (ix *Index) AddChunk(rows []domain.TransactionRow) {
	for _, row := range rows {
		c := &Candidate{Row: row, Remaining: row.Quantity}
		ix.all = append(ix.all, c)
		ix.byCode[row.MaterialCode] = append(ix.byCode[row.MaterialCode], c)
		key := codeSupplierKey{code: row.MaterialCode, supplier: row.Supplier}
		ix.byCodeSupplier[key] = append(ix.byCodeSupplier[key], c)
	}
}

// ByCode returns candidates for a material code in insertion order.
func (ix *Index) ByCode(code string) []*Candidate {
	return ix.byCode[code]
}

// ByCodeSupplier returns candidates for a material code and supplier in
// insertion order.
func (ix *Index) ByCodeSupplier(code, supplier string) []*Candidate {
	return ix.byCodeSupplier[codeSupplierKey{code: code, supplier: supplier}]
}

// All returns every candidate in insertion order.
func (ix *Index) All() []*Candidate { return ix.all }

// Len reports how many rows have been indexed.
func (ix *Index) Len() int { return len(ix.all) }
