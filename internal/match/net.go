package match

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/index"
)

// List labels carried into the report layer. Forward remainders land in
// the main list; orphan return fragments land in the secondary list.
const (
	ListMain      = "A"
	ListSecondary = "B"
)

// NetRow is a transaction row after netting, annotated for reporting.
// SoldQty and CountQty are filled by later stages.
type NetRow struct {
	domain.TransactionRow
	ReturnedQty decimal.Decimal
	SoldQty     decimal.Decimal
	CountQty    decimal.Decimal
	List        string
}

// BuildNet assembles the netted list from the index plus orphan
// fragments, re-sequenced 1-based. Forward rows keep their original
// quantity reduced by what returns consumed; fully consumed rows drop
// out. Ordering is operation date ascending with sheet order breaking
// ties, orphans appended after.
func BuildNet(ix *index.Index, orphans []domain.TransactionRow) []*NetRow {
	var net []*NetRow
	for _, c := range ix.All() {
		if c.Remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}
		row := c.Row
		row.Quantity = c.Remaining
		if c.ReturnedQty.GreaterThan(decimal.Zero) && row.Notes == "" {
			row.Notes = NoteReturned
		}
		net = append(net, &NetRow{
			TransactionRow: row,
			ReturnedQty:    c.ReturnedQty,
			List:           ListMain,
		})
	}

	sort.SliceStable(net, func(i, j int) bool {
		a, b := net[i].OperationDate, net[j].OperationDate
		switch {
		case a == nil && b == nil:
			return net[i].Seq < net[j].Seq
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return net[i].Seq < net[j].Seq
		}
	})

	for _, o := range orphans {
		o.Notes = NoteOrphan
		net = append(net, &NetRow{TransactionRow: o, List: ListSecondary})
	}

	for i, row := range net {
		row.Seq = i + 1
	}
	return net
}

// Notes stamped on net rows.
const (
	NoteReturned = "returned"
	NoteOrphan   = "unmatchedReturn"
)
