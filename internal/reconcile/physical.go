package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// List labels for prepared physical counts.
const (
	ListCounted    = "E"
	ListAdjustment = "F"
)

// Notes stamped during count preparation.
const (
	NoteNegativeApplied = "negativeApplied"
	NoteNegativeExcess  = "negativeExcess"
	NoteExpiredFolded   = "expiredFolded"
	NoteExpiredKept     = "expired"
	NoteNetted          = "netted"
)

// PreparedCount is the output of physical-count preparation. Counted is
// the sellable stock; Adjustments is the audit trail of every negative
// and expired row that was applied. Quantity is conserved: Counted sums
// to the raw sheet total.
type PreparedCount struct {
	Counted     []domain.CountRow
	Adjustments []domain.CountRow
}

// PreparePhysical nets negative count rows against positive rows of the
// same material and folds expired stock into the nearest-expiry live row.
// Negative rows try an exact-quantity match first, then consume from the
// farthest expiry down. A negative with no positive stock left survives
// as a negative row so nothing vanishes silently.
func PreparePhysical(rows []domain.CountRow, today time.Time, th Thresholds) PreparedCount {
	type bucket struct {
		positives []*domain.CountRow
		negatives []*domain.CountRow
	}
	buckets := make(map[string]*bucket)
	var codes []string

	for i := range rows {
		row := rows[i]
		b := buckets[row.MaterialCode]
		if b == nil {
			b = &bucket{}
			buckets[row.MaterialCode] = b
			codes = append(codes, row.MaterialCode)
		}
		r := row
		if r.Quantity.IsNegative() {
			b.negatives = append(b.negatives, &r)
		} else {
			b.positives = append(b.positives, &r)
		}
	}

	var out PreparedCount

	for _, code := range codes {
		b := buckets[code]

		for _, neg := range b.negatives {
			need := neg.Quantity.Abs()

			// exact quantity match removes the whole positive row
			exact := -1
			for i, pos := range b.positives {
				if pos.Quantity.Equal(need) {
					exact = i
					break
				}
			}
			if exact >= 0 {
				applied := *b.positives[exact]
				applied.Notes = NoteNetted
				applied.List = ListAdjustment
				out.Adjustments = append(out.Adjustments, applied)
				b.positives = append(b.positives[:exact], b.positives[exact+1:]...)

				audit := *neg
				audit.Notes = NoteNegativeApplied
				audit.List = ListAdjustment
				out.Adjustments = append(out.Adjustments, audit)
				continue
			}

			// otherwise consume farthest expiry first
			sort.SliceStable(b.positives, func(i, j int) bool {
				return expiryAfter(b.positives[i].ExpiryDate, b.positives[j].ExpiryDate)
			})
			for _, pos := range b.positives {
				if need.LessThanOrEqual(decimal.Zero) {
					break
				}
				if pos.Quantity.LessThanOrEqual(decimal.Zero) {
					continue
				}
				taken := need
				if pos.Quantity.LessThan(need) {
					taken = pos.Quantity
				}
				pos.Quantity = pos.Quantity.Sub(taken)
				need = need.Sub(taken)
			}

			audit := *neg
			audit.List = ListAdjustment
			if need.GreaterThan(decimal.Zero) {
				// unapplied remainder stays in the counted list
				leftover := *neg
				leftover.Quantity = need.Neg()
				leftover.Notes = NoteNegativeExcess
				b.positives = append(b.positives, &leftover)
				audit.Notes = NoteNegativeExcess
			} else {
				audit.Notes = NoteNegativeApplied
			}
			out.Adjustments = append(out.Adjustments, audit)
		}

		// drop zeroed rows before folding
		live := b.positives[:0]
		for _, pos := range b.positives {
			if !pos.Quantity.IsZero() {
				live = append(live, pos)
			}
		}
		b.positives = live

		foldExpired(b.positives, today, th, &out)

		final := b.positives[:0]
		for _, pos := range b.positives {
			if !pos.Quantity.IsZero() {
				final = append(final, pos)
			}
		}
		b.positives = final
	}

	// stable output: code groups in first-seen order, expiry ascending
	for _, code := range codes {
		rows := buckets[code].positives
		sort.SliceStable(rows, func(i, j int) bool {
			if !expiryEqual(rows[i].ExpiryDate, rows[j].ExpiryDate) {
				return expiryBefore(rows[i].ExpiryDate, rows[j].ExpiryDate)
			}
			return rows[i].Seq < rows[j].Seq
		})
		for _, row := range rows {
			r := *row
			r.List = ListCounted
			out.Counted = append(out.Counted, r)
		}
	}

	for i := range out.Counted {
		out.Counted[i].Seq = i + 1
	}
	for i := range out.Adjustments {
		out.Adjustments[i].Seq = i + 1
	}
	return out
}

// foldExpired moves expired stock onto the nearest-expiry live row of the
// same material. Rows with nothing to fold into keep their quantity and
// an expired note.
func foldExpired(positives []*domain.CountRow, today time.Time, th Thresholds, out *PreparedCount) {
	for _, row := range positives {
		if row.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if th.ClassifyExpiry(today, row.ExpiryDate) != domain.ExpiryExpired {
			continue
		}

		var target *domain.CountRow
		for _, cand := range positives {
			if cand == row || cand.Quantity.LessThanOrEqual(decimal.Zero) {
				continue
			}
			if th.ClassifyExpiry(today, cand.ExpiryDate) == domain.ExpiryExpired {
				continue
			}
			if target == nil || expiryBefore(cand.ExpiryDate, target.ExpiryDate) {
				target = cand
			}
		}

		if target == nil {
			row.Notes = NoteExpiredKept
			continue
		}

		audit := *row
		audit.Notes = NoteExpiredFolded
		audit.List = ListAdjustment
		out.Adjustments = append(out.Adjustments, audit)

		target.Quantity = target.Quantity.Add(row.Quantity)
		row.Quantity = decimal.Zero
	}
}

func expiryBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}

func expiryAfter(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}

func expiryEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
