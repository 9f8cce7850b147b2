package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/match"
)

// Condition statements for ending-inventory rows.
const (
	ConditionGood           = "good"
	ConditionNewItem        = "newItem"
	ConditionReturnPrepared = "returnPrepared"
)

// Notes stamped on ending-inventory rows.
const (
	NoteMatchedPurchase = "matchedPurchase"
	NoteBookStock       = "noPurchaseRecord"
)

// List labels for the ending-inventory output.
const (
	EndingListMain     = "A"
	EndingListUnproven = "B"
)

// MovementInfo carries the excess-report verdict for one material into
// the ending-inventory build.
type MovementInfo struct {
	Status     domain.MovementStatus
	SoldQty    decimal.Decimal
	IdealQty   decimal.Decimal
	SurplusQty decimal.Decimal
	NeedQty    decimal.Decimal
}

// EndingRow is one row of the ending-inventory report.
type EndingRow struct {
	Seq           int
	MaterialCode  string
	MaterialName  string
	Unit          string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal
	ExpiryDate    *time.Time
	Supplier      string
	PurchaseDate  *time.Time
	OperationDate *time.Time
	OperationType domain.OperationType
	AgeDays       int
	SoldQty       decimal.Decimal

	IdealQty          decimal.Decimal
	SurplusQty        decimal.Decimal
	ReturnPreparedQty decimal.Decimal
	NewItemQty        decimal.Decimal
	NeedQty           decimal.Decimal
	SurplusPercent    decimal.Decimal

	ExpiryStatus   domain.ExpiryStatus
	MovementStatus domain.MovementStatus
	Condition      string
	FinalStatement string

	IdealValue          decimal.Decimal
	SurplusValue        decimal.Decimal
	ReturnPreparedValue decimal.Decimal
	NewItemValue        decimal.Decimal
	NeedValue           decimal.Decimal

	List         string
	RecordNumber string
	Notes        string
}

// EndingOptions configures the ending-inventory build.
type EndingOptions struct {
	Today      time.Time
	Thresholds Thresholds
	Movement   map[string]MovementInfo
}

// builder tracks per-purchase availability and which materials already
// carried their movement totals.
type builder struct {
	opts         EndingOptions
	available    map[*match.NetRow]decimal.Decimal
	byCode       map[string][]*match.NetRow
	seenMaterial map[string]bool
}

// BuildEndingInventory proves counted stock against netted purchases.
// Each counted row first claims purchases sharing its expiry date, then
// any remaining purchase expiry-ascending, splitting across records as
// needed. Claimed quantity is recorded back onto the purchase rows.
// Stock no purchase can prove lands in the secondary list.
func BuildEndingInventory(counted []domain.CountRow, purchases []*match.NetRow, opts EndingOptions) (main, secondary []*EndingRow) {
	b := &builder{
		opts:         opts,
		available:    make(map[*match.NetRow]decimal.Decimal, len(purchases)),
		byCode:       make(map[string][]*match.NetRow),
		seenMaterial: make(map[string]bool),
	}
	for _, p := range purchases {
		if p.List != match.ListMain || p.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		b.available[p] = p.Quantity
		b.byCode[p.MaterialCode] = append(b.byCode[p.MaterialCode], p)
	}
	for _, rows := range b.byCode {
		sort.SliceStable(rows, func(i, j int) bool {
			if !expiryEqual(rows[i].ExpiryDate, rows[j].ExpiryDate) {
				return expiryBefore(rows[i].ExpiryDate, rows[j].ExpiryDate)
			}
			return rows[i].Seq < rows[j].Seq
		})
	}

	for _, count := range counted {
		remaining := count.Quantity
		if remaining.LessThanOrEqual(decimal.Zero) {
			row := b.rowFromCount(count)
			row.List = EndingListUnproven
			if count.Notes != "" {
				row.Notes = count.Notes
			}
			b.finish(row)
			secondary = append(secondary, row)
			continue
		}

		candidates := b.byCode[count.MaterialCode]

		// strategy 1: purchases with the same expiry date
		for _, p := range candidates {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			if !domain.SameDay(p.ExpiryDate, count.ExpiryDate) {
				continue
			}
			remaining = b.claim(&main, count, p, remaining)
		}

		// strategy 2: any purchase with availability, expiry ascending
		for _, p := range candidates {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			remaining = b.claim(&main, count, p, remaining)
		}

		if remaining.GreaterThan(decimal.Zero) {
			row := b.rowFromCount(count)
			row.Quantity = remaining
			row.Total = domain.RoundMoney(remaining.Mul(row.UnitPrice))
			row.List = EndingListUnproven
			row.Notes = NoteBookStock
			b.finish(row)
			secondary = append(secondary, row)
		}
	}

	reseq := func(rows []*EndingRow) {
		for i, r := range rows {
			r.Seq = i + 1
		}
	}
	reseq(main)
	reseq(secondary)
	return main, secondary
}

func (b *builder) claim(out *[]*EndingRow, count domain.CountRow, p *match.NetRow, remaining decimal.Decimal) decimal.Decimal {
	avail := b.available[p]
	if avail.LessThanOrEqual(decimal.Zero) {
		return remaining
	}
	taken := remaining
	if avail.LessThan(remaining) {
		taken = avail
	}
	b.available[p] = avail.Sub(taken)
	p.CountQty = p.CountQty.Add(taken)

	row := b.rowFromCount(count)
	row.Quantity = taken
	row.UnitPrice = p.UnitPrice
	row.Total = domain.RoundMoney(taken.Mul(p.UnitPrice))
	row.Supplier = p.Supplier
	row.PurchaseDate = p.OperationDate
	row.OperationDate = p.OperationDate
	row.OperationType = p.OperationType
	row.RecordNumber = p.RecordNumber
	row.List = EndingListMain
	row.Notes = NoteMatchedPurchase
	b.finish(row)
	*out = append(*out, row)

	return remaining.Sub(taken)
}

func (b *builder) rowFromCount(count domain.CountRow) *EndingRow {
	return &EndingRow{
		MaterialCode: count.MaterialCode,
		MaterialName: count.MaterialName,
		Unit:         count.Unit,
		Quantity:     count.Quantity,
		UnitPrice:    count.UnitPrice,
		Total:        domain.RoundMoney(count.Quantity.Mul(count.UnitPrice)),
		ExpiryDate:   count.ExpiryDate,
		RecordNumber: count.RecordNumber,
	}
}

// finish derives expiry status, age, condition, movement and statement
// values once the row's quantity and pricing are settled.
func (b *builder) finish(row *EndingRow) {
	th := b.opts.Thresholds
	row.ExpiryStatus = th.ClassifyExpiry(b.opts.Today, row.ExpiryDate)

	row.AgeDays = -1
	if row.PurchaseDate != nil {
		row.AgeDays = domain.DaysBetween(*row.PurchaseDate, b.opts.Today)
	}

	switch {
	case row.ExpiryStatus == domain.ExpiryExpired || row.ExpiryStatus == domain.ExpiryVeryNear:
		row.Condition = ConditionReturnPrepared
		row.ReturnPreparedQty = row.Quantity
		row.ReturnPreparedValue = domain.RoundMoney(row.Quantity.Mul(row.UnitPrice))
	case th.IsNewItem(b.opts.Today, row.PurchaseDate):
		row.Condition = ConditionNewItem
		row.NewItemQty = row.Quantity
		row.NewItemValue = domain.RoundMoney(row.Quantity.Mul(row.UnitPrice))
	default:
		row.Condition = ConditionGood
	}

	row.MovementStatus = domain.MovementUnknown
	if info, ok := b.opts.Movement[row.MaterialCode]; ok {
		row.MovementStatus = info.Status
		row.SoldQty = info.SoldQty
		// material-level totals land on the first row only so they are
		// not double counted across split records
		if !b.seenMaterial[row.MaterialCode] {
			row.IdealQty = info.IdealQty
			row.SurplusQty = info.SurplusQty
			row.NeedQty = info.NeedQty
			row.SurplusPercent = domain.Percent(info.SurplusQty, info.IdealQty)
			row.IdealValue = domain.RoundMoney(info.IdealQty.Mul(row.UnitPrice))
			row.SurplusValue = domain.RoundMoney(info.SurplusQty.Mul(row.UnitPrice))
			row.NeedValue = domain.RoundMoney(info.NeedQty.Mul(row.UnitPrice))
		}
	}
	b.seenMaterial[row.MaterialCode] = true

	row.FinalStatement = finalStatement(row)
}

// finalStatement picks the single dominant verdict for the row.
func finalStatement(row *EndingRow) string {
	switch {
	case row.Condition == ConditionReturnPrepared:
		return ConditionReturnPrepared
	case row.MovementStatus == domain.MovementStagnant:
		return string(domain.MovementStagnant)
	case row.Condition == ConditionNewItem:
		return ConditionNewItem
	case row.MovementStatus == domain.MovementSurplus:
		return string(domain.MovementSurplus)
	case row.MovementStatus == domain.MovementNeed:
		return string(domain.MovementNeed)
	default:
		return ConditionGood
	}
}
