package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// ABC band boundaries as cumulative revenue percentages.
var (
	abcBandA = decimal.NewFromInt(80)
	abcBandB = decimal.NewFromInt(95)
)

// ABCRow places one material in a consumption-value band.
type ABCRow struct {
	Seq               int
	MaterialCode      string
	MaterialName      string
	Value             decimal.Decimal
	ValuePercent      decimal.Decimal
	CumulativePercent decimal.Decimal
	Class             domain.ABCClass
}

// ABCClassification ranks materials by revenue and bands them on
// cumulative share: the first 80% is class A, up to 95% class B, the
// tail class C.
func ABCClassification(profits []ProfitRow) []ABCRow {
	rows := make([]ABCRow, 0, len(profits))
	total := decimal.Zero
	for _, p := range profits {
		rows = append(rows, ABCRow{
			MaterialCode: p.MaterialCode,
			MaterialName: p.MaterialName,
			Value:        p.Revenue,
		})
		total = total.Add(p.Revenue)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value.GreaterThan(rows[j].Value)
	})

	cumulative := decimal.Zero
	for i := range rows {
		cumulative = cumulative.Add(rows[i].Value)
		rows[i].Seq = i + 1
		rows[i].ValuePercent = domain.Percent(rows[i].Value, total)
		rows[i].CumulativePercent = domain.Percent(cumulative, total)

		switch {
		case rows[i].CumulativePercent.LessThanOrEqual(abcBandA):
			rows[i].Class = domain.ClassA
		case rows[i].CumulativePercent.LessThanOrEqual(abcBandB):
			rows[i].Class = domain.ClassB
		default:
			rows[i].Class = domain.ClassC
		}
	}
	return rows
}
