// Package match nets return rows against forward rows of the same sheet.
// Each return walks UNMATCHED → SEARCHING → MATCHED, PARTIAL or ORPHAN;
// anomalies become statuses, never errors, so a malformed sheet cannot
// abort a run.
package match

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/index"
)

// Lookup key numbers recorded on each match record.
const (
	KeyNone         = 0
	KeyCodeSupplier = 1
	KeyCodeOnly     = 2
)

// Record is the audit trail of one return row through the matcher.
// Consumed + Remaining always equals the return quantity.
type Record struct {
	Return      domain.TransactionRow
	Consumed    decimal.Decimal
	Remaining   decimal.Decimal
	Status      domain.MatchStatus
	KeyUsed     int
	MatchedSeqs []int
}

// Matcher consumes return rows chunk by chunk against an index of
// forward rows.
type Matcher struct {
	ix      *index.Index
	records []Record
	orphans []domain.TransactionRow
}

func New(ix *index.Index) *Matcher {
	return &Matcher{ix: ix}
}

// ProcessChunk matches a chunk of return rows in sheet order.
func (m *Matcher) ProcessChunk(returns []domain.TransactionRow) {
	for _, ret := range returns {
		m.matchOne(ret)
	}
}

// fifo orders candidates oldest operation date first. Undated candidates
// sort last; ties fall back to sheet order.
func fifo(candidates []*index.Candidate) []*index.Candidate {
	ordered := make([]*index.Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Row.OperationDate, ordered[j].Row.OperationDate
		switch {
		case a == nil && b == nil:
			return ordered[i].Row.Seq < ordered[j].Row.Seq
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return ordered[i].Row.Seq < ordered[j].Row.Seq
		}
	})
	return ordered
}

func (m *Matcher) matchOne(ret domain.TransactionRow) {
	need := ret.Quantity.Abs()
	rec := Record{
		Return:    ret,
		Consumed:  decimal.Zero,
		Remaining: need,
	}

	// Phase 1: material code + supplier. Phase 2 widens to code only for
	// whatever the first phase could not cover.
	phases := []struct {
		key        int
		candidates []*index.Candidate
	}{
		{KeyCodeSupplier, m.ix.ByCodeSupplier(ret.MaterialCode, ret.Supplier)},
		{KeyCodeOnly, m.ix.ByCode(ret.MaterialCode)},
	}

	for _, phase := range phases {
		if rec.Remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		for _, c := range fifo(phase.candidates) {
			if rec.Remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			taken := c.Consume(rec.Remaining, ret.Seq)
			if taken.IsZero() {
				continue
			}
			rec.Consumed = rec.Consumed.Add(taken)
			rec.Remaining = rec.Remaining.Sub(taken)
			rec.MatchedSeqs = append(rec.MatchedSeqs, c.Row.Seq)
			if rec.KeyUsed == KeyNone {
				rec.KeyUsed = phase.key
			}
		}
	}

	switch {
	case need.IsZero() || rec.Remaining.IsZero():
		rec.Status = domain.MatchMatched
	case rec.Consumed.IsZero():
		rec.Status = domain.MatchOrphan
	default:
		rec.Status = domain.MatchPartial
	}

	// Unconsumed return quantity survives as a negative fragment so the
	// net lists still balance.
	if rec.Remaining.GreaterThan(decimal.Zero) {
		orphan := ret
		orphan.Quantity = rec.Remaining.Neg()
		m.orphans = append(m.orphans, orphan)
	}

	m.records = append(m.records, rec)
}

// Records returns one audit record per processed return, in input order.
func (m *Matcher) Records() []Record { return m.records }

// Orphans returns the negative-quantity fragments of unmatched and
// partially matched returns, in input order.
func (m *Matcher) Orphans() []domain.TransactionRow { return m.orphans }

// TotalConsumed sums consumed quantity across all records.
func (m *Matcher) TotalConsumed() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range m.records {
		total = total.Add(rec.Consumed)
	}
	return total
}
