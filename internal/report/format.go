package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// FormatMoney renders a whole currency amount with thousands separators.
func FormatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// FormatQuantity renders a quantity with two decimal places, dropping
// them when whole.
func FormatQuantity(d decimal.Decimal) string {
	r := domain.RoundQuantity(d)
	if r.IsInteger() {
		return r.StringFixed(0)
	}
	return r.StringFixed(2)
}

// FormatPercent renders a percentage with two decimal places and sign.
func FormatPercent(d decimal.Decimal) string {
	return domain.RoundPercent(d).String() + "%"
}

// FormatDate renders a calendar date, empty when unknown.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Display labels for canonical status values. Processing stays on the
// canonical identifiers; localization happens only here at the
// presentation boundary.
var arabicLabels = map[string]string{
	string(domain.OpPurchase):       "شراء",
	string(domain.OpPurchaseReturn): "مرتجع شراء",
	string(domain.OpSale):           "بيع",
	string(domain.OpSaleReturn):     "مرتجع بيع",

	string(domain.ExpiryExpired):  "منتهي الصلاحية",
	string(domain.ExpiryVeryNear): "قريب جدا",
	string(domain.ExpiryNear):     "قريب",
	string(domain.ExpiryFar):      "بعيد",
	string(domain.ExpiryUnknown):  "غير محدد",

	string(domain.MovementStagnant): "راكد",
	string(domain.MovementNeed):     "احتياج",
	string(domain.MovementSurplus):  "فائض",
	string(domain.MovementAdequate): "مناسب",

	string(domain.UrgencyUrgent):   "عاجل",
	string(domain.UrgencyDeferred): "مؤجل",

	string(domain.ItemNormal): "مطابق",
	string(domain.ItemNew):    "صنف جديد",

	"good":           "جيد",
	"returnPrepared": "معد للارجاع",

	"profitable": "رابح",
	"losing":     "خاسر",
	"breakeven":  "متعادل",
	"uncosted":   "بدون تكلفة",

	"matchedPurchase":  "مطابق لسجل شراء",
	"noPurchaseRecord": "رصيد دفتري",
	"returned":         "عليه مرتجع",
	"unmatchedReturn":  "مرتجع غير مطابق",

	"negativeApplied": "رصيد سالب مسوى",
	"negativeExcess":  "رصيد سالب زائد",
	"expiredFolded":   "صلاحية مدمجة",
	"netted":          "مسوى",
}

// Label localizes a canonical identifier for display, falling back to
// the identifier itself.
func Label(id string) string {
	if id == "" {
		return ""
	}
	if label, ok := arabicLabels[id]; ok {
		return label
	}
	return id
}

// FormatAge renders an item age in days, empty when unknown.
func FormatAge(days int) string {
	if days < 0 {
		return ""
	}
	return strconv.Itoa(days)
}
