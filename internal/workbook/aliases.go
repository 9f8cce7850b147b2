// Package workbook reads source Excel files into raw canonical rows and
// exports rendered reports back to Excel.
package workbook

import (
	"strings"

	"github.com/hmshaban/jard-backend/internal/domain"
)

// Canonical sheet keys.
const (
	SheetPurchases = "purchases"
	SheetSales     = "sales"
	SheetPhysical  = "physicalInventory"
	SheetBalances  = "supplierbalances"
)

// nameFolder strips spacing, separators and Arabic letter variants so
// header matching survives the usual spreadsheet drift.
var nameFolder = strings.NewReplacer(
	" ", "", "_", "", "-", "", ".", "",
	"أ", "ا", "إ", "ا", "آ", "ا",
	"ة", "ه", "ى", "ي",
	"ٌ", "", "ً", "", "َ", "", "ُ", "", "ِ", "", "ّ", "", "ْ", "",
)

func normalizeName(s string) string {
	return nameFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}

var sheetAliases = buildAliasLookup(map[string][]string{
	SheetPurchases: {"purchases", "المشتريات", "مشتريات"},
	SheetSales:     {"sales", "المبيعات", "مبيعات"},
	SheetPhysical:  {"physicalinventory", "physical inventory", "المخزون", "الجرد", "جرد المخزون"},
	SheetBalances:  {"supplierbalances", "supplier balances", "الارصدة", "ارصدة الموردين"},
})

var columnAliases = buildAliasLookup(map[string][]string{
	domain.FieldIndex:         {"م", "رقم", "index", "no"},
	domain.FieldMaterialCode:  {"رمز المادة", "الرمز", "رمز الصنف", "code", "materialcode", "itemcode"},
	domain.FieldMaterialName:  {"اسم المادة", "اسم الصنف", "الاسم", "المادة", "name", "materialname", "itemname"},
	domain.FieldUnit:          {"الوحدة", "unit"},
	domain.FieldQuantity:      {"الكمية", "كمية", "quantity", "qty"},
	domain.FieldUnitPrice:     {"الافرادي", "السعر", "سعر الوحدة", "سعر الافرادي", "unitprice", "price"},
	domain.FieldExpiryDate:    {"تاريخ الصلاحية", "الصلاحية", "expirydate", "expiry"},
	domain.FieldSupplier:      {"المورد", "اسم المورد", "supplier", "vendor"},
	domain.FieldOperationDate: {"تاريخ العملية", "التاريخ", "operationdate", "date"},
	domain.FieldOperationType: {"نوع العملية", "العملية", "operationtype", "type"},
	domain.FieldRecordNumber:  {"رقم السجل", "السجل", "recordnumber", "record"},
	domain.FieldNotes:         {"ملاحظات", "ملاحظة", "notes"},
	domain.FieldDebit:         {"مدين", "debit"},
	domain.FieldCredit:        {"دائن", "credit"},
	domain.FieldAccountCode:   {"رمز الحساب", "الحساب", "accountcode", "account"},
	domain.FieldSubAccount:    {"الحساب الفرعي", "حساب فرعي", "subaccount"},
})

// requiredColumns per canonical sheet; a present sheet missing any of
// these fails the import before processing starts.
var requiredColumns = map[string][]string{
	SheetPurchases: {domain.FieldMaterialCode, domain.FieldMaterialName, domain.FieldQuantity, domain.FieldUnitPrice},
	SheetSales:     {domain.FieldMaterialCode, domain.FieldMaterialName, domain.FieldQuantity, domain.FieldUnitPrice},
	SheetPhysical:  {domain.FieldMaterialCode, domain.FieldQuantity},
	SheetBalances:  {domain.FieldSupplier, domain.FieldDebit, domain.FieldCredit},
}

func buildAliasLookup(aliases map[string][]string) map[string]string {
	lookup := make(map[string]string)
	for canonical, names := range aliases {
		for _, name := range names {
			lookup[normalizeName(name)] = canonical
		}
	}
	return lookup
}
