// Package normalize coerces raw spreadsheet cells into typed domain
// values. Parsing is permissive: thousands separators and Arabic-Indic
// digits are folded, and anything that still fails parses to zero with a
// recorded warning instead of failing the run.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// RawRow is one sheet row keyed by canonical field identifier.
type RawRow map[string]string

// RawSheet is a parsed sheet ready for normalization.
type RawSheet struct {
	Name string
	Rows []RawRow
}

var digitFolder = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	",", "", "٬", "", " ", "", " ", "",
	"٫", ".",
)

// CleanNumber folds Arabic-Indic digits and strips grouping separators.
func CleanNumber(raw string) string {
	return digitFolder.Replace(strings.TrimSpace(raw))
}

// ParseDecimal parses a numeric cell. The second return reports success;
// empty cells parse as zero successfully.
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	s := CleanNumber(raw)
	if s == "" || s == "-" {
		return decimal.Zero, true
	}
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseDate parses ISO dates, day-first dates and Excel serial numbers.
// Empty cells parse as nil successfully.
func ParseDate(raw string) (*time.Time, bool) {
	s := CleanNumber(raw)
	if s == "" {
		return nil, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day, true
		}
	}

	// Excel serial date
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 300000 {
		day := excelEpoch.AddDate(0, 0, int(serial))
		return &day, true
	}

	return nil, false
}

// Normalizer coerces rows while collecting warnings.
type Normalizer struct {
	warnings *Collector
}

func New(warnings *Collector) *Normalizer {
	if warnings == nil {
		warnings = NewCollector(DefaultMaxWarnings)
	}
	return &Normalizer{warnings: warnings}
}

// Warnings exposes the collector backing this normalizer.
func (n *Normalizer) Warnings() *Collector { return n.warnings }

func (n *Normalizer) quantity(sheet string, rowNum int, field, raw string) decimal.Decimal {
	v, ok := ParseDecimal(raw)
	if !ok {
		n.warnings.Add(sheet, rowNum, field, raw, "unparseable quantity, using 0")
		return decimal.Zero
	}
	return domain.RoundQuantity(v)
}

func (n *Normalizer) money(sheet string, rowNum int, field, raw string) decimal.Decimal {
	v, ok := ParseDecimal(raw)
	if !ok {
		n.warnings.Add(sheet, rowNum, field, raw, "unparseable amount, using 0")
		return decimal.Zero
	}
	return domain.RoundMoney(v)
}

func (n *Normalizer) date(sheet string, rowNum int, field, raw string) *time.Time {
	t, ok := ParseDate(raw)
	if !ok {
		n.warnings.Add(sheet, rowNum, field, raw, "unparseable date, leaving empty")
		return nil
	}
	return t
}

// operationType maps sheet labels onto canonical operation types.
// Unknown labels on the purchases sheet default to purchase, on the sales
// sheet to sale; return labels are recognized in Arabic and English.
func operationType(raw string, sales bool) domain.OperationType {
	s := strings.ToLower(strings.TrimSpace(raw))
	isReturn := strings.Contains(s, "مرتجع") || strings.Contains(s, "ارجاع") ||
		strings.Contains(s, "إرجاع") || strings.Contains(s, "return")
	switch {
	case sales && isReturn:
		return domain.OpSaleReturn
	case sales:
		return domain.OpSale
	case isReturn:
		return domain.OpPurchaseReturn
	default:
		return domain.OpPurchase
	}
}

// TransactionRow normalizes one purchases/sales row. rowNum is the
// 1-based data-row position used both as Seq and in warnings.
func (n *Normalizer) TransactionRow(sheet string, rowNum int, raw RawRow, sales bool) domain.TransactionRow {
	return domain.TransactionRow{
		Seq:           rowNum,
		MaterialCode:  strings.TrimSpace(raw[domain.FieldMaterialCode]),
		MaterialName:  strings.TrimSpace(raw[domain.FieldMaterialName]),
		Unit:          strings.TrimSpace(raw[domain.FieldUnit]),
		Quantity:      n.quantity(sheet, rowNum, domain.FieldQuantity, raw[domain.FieldQuantity]),
		UnitPrice:     n.money(sheet, rowNum, domain.FieldUnitPrice, raw[domain.FieldUnitPrice]),
		ExpiryDate:    n.date(sheet, rowNum, domain.FieldExpiryDate, raw[domain.FieldExpiryDate]),
		Supplier:      strings.TrimSpace(raw[domain.FieldSupplier]),
		OperationDate: n.date(sheet, rowNum, domain.FieldOperationDate, raw[domain.FieldOperationDate]),
		OperationType: operationType(raw[domain.FieldOperationType], sales),
		RecordNumber:  strings.TrimSpace(raw[domain.FieldRecordNumber]),
		Notes:         strings.TrimSpace(raw[domain.FieldNotes]),
	}
}

// CountRow normalizes one physical-inventory row.
func (n *Normalizer) CountRow(sheet string, rowNum int, raw RawRow) domain.CountRow {
	return domain.CountRow{
		Seq:          rowNum,
		MaterialCode: strings.TrimSpace(raw[domain.FieldMaterialCode]),
		MaterialName: strings.TrimSpace(raw[domain.FieldMaterialName]),
		Unit:         strings.TrimSpace(raw[domain.FieldUnit]),
		Quantity:     n.quantity(sheet, rowNum, domain.FieldQuantity, raw[domain.FieldQuantity]),
		UnitPrice:    n.money(sheet, rowNum, domain.FieldUnitPrice, raw[domain.FieldUnitPrice]),
		ExpiryDate:   n.date(sheet, rowNum, domain.FieldExpiryDate, raw[domain.FieldExpiryDate]),
		RecordNumber: strings.TrimSpace(raw[domain.FieldRecordNumber]),
		Notes:        strings.TrimSpace(raw[domain.FieldNotes]),
	}
}

// BalanceRow normalizes one supplier-balances row.
func (n *Normalizer) BalanceRow(sheet string, rowNum int, raw RawRow) domain.BalanceRow {
	return domain.BalanceRow{
		Seq:         rowNum,
		AccountCode: strings.TrimSpace(raw[domain.FieldAccountCode]),
		Supplier:    strings.TrimSpace(raw[domain.FieldSupplier]),
		Debit:       n.money(sheet, rowNum, domain.FieldDebit, raw[domain.FieldDebit]),
		Credit:      n.money(sheet, rowNum, domain.FieldCredit, raw[domain.FieldCredit]),
		SubAccount:  strings.TrimSpace(raw[domain.FieldSubAccount]),
	}
}
