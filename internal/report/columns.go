// Package report renders run results into fixed tabular contracts. The
// column tables are the external interface consumed by spreadsheets and
// the API; their order is pinned by tests and must not drift.
package report

// Align is a cell alignment hint for exporters.
type Align string

const (
	AlignRight  Align = "right"
	AlignCenter Align = "center"
	AlignLeft   Align = "left"
)

// Kind is the display format of a column.
type Kind string

const (
	KindText     Kind = "text"
	KindInt      Kind = "int"
	KindQuantity Kind = "quantity"
	KindMoney    Kind = "money"
	KindPercent  Kind = "percent"
	KindDate     Kind = "date"
)

// Column describes one report column.
type Column struct {
	Title string `json:"title"`
	Field string `json:"field"`
	Width int    `json:"width"`
	Align Align  `json:"align"`
	Kind  Kind   `json:"kind"`
}

// Report names used as table keys, cache keys and export sheet names.
const (
	NameNetPurchases  = "netPurchases"
	NameNetSales      = "netSales"
	NamePhysical      = "physicalInventory"
	NameEnding        = "endingInventory"
	NameExcess        = "excessInventory"
	NameSalesCost     = "salesCost"
	NameProfitability = "itemProfitability"
	NameABC           = "abcClassification"
	NameTurnover      = "inventoryTurnover"
	NameReplenishment = "replenishmentGap"
	NamePayables      = "supplierPayables"
	NameItems         = "itemReconciliation"
)

// EndingInventoryColumns is the 32-column canonical order of the ending
// inventory report.
var EndingInventoryColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "الكمية", Field: "quantity", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الافرادي", Field: "unitPrice", Width: 10, Align: AlignCenter, Kind: KindMoney},
	{Title: "الاجمالي", Field: "total", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "تاريخ الصلاحية", Field: "expiryDate", Width: 13, Align: AlignCenter, Kind: KindDate},
	{Title: "المورد", Field: "supplier", Width: 20, Align: AlignRight, Kind: KindText},
	{Title: "تاريخ الشراء", Field: "purchaseDate", Width: 13, Align: AlignCenter, Kind: KindDate},
	{Title: "تاريخ العملية", Field: "operationDate", Width: 13, Align: AlignCenter, Kind: KindDate},
	{Title: "نوع العملية", Field: "operationType", Width: 11, Align: AlignCenter, Kind: KindText},
	{Title: "عمر الصنف", Field: "ageDays", Width: 9, Align: AlignCenter, Kind: KindInt},
	{Title: "كمية المبيعات", Field: "soldQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "مخزون مثالي", Field: "idealQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "فائض المخزون", Field: "surplusQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "معد للارجاع", Field: "returnPreparedQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "صنف جديد", Field: "newItemQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الاحتياج", Field: "needQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "نسبة الفائض", Field: "surplusPercent", Width: 10, Align: AlignCenter, Kind: KindPercent},
	{Title: "بيان الصلاحية", Field: "expiryStatus", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "بيان الحركة", Field: "movementStatus", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "بيان الحالة", Field: "condition", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "البيان", Field: "finalStatement", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "قيمة مخزون مثالي", Field: "idealValue", Width: 13, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة فائض المخزون", Field: "surplusValue", Width: 13, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة معد للارجاع", Field: "returnPreparedValue", Width: 13, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة صنف جديد", Field: "newItemValue", Width: 13, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة الاحتياج", Field: "needValue", Width: 13, Align: AlignCenter, Kind: KindMoney},
	{Title: "القائمة", Field: "list", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "رقم السجل", Field: "recordNumber", Width: 10, Align: AlignCenter, Kind: KindText},
	{Title: "ملاحظات", Field: "notes", Width: 18, Align: AlignRight, Kind: KindText},
}

// NetPurchasesColumns covers the netted purchases list, orphan return
// fragments included.
var NetPurchasesColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "الكمية", Field: "quantity", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الافرادي", Field: "unitPrice", Width: 10, Align: AlignCenter, Kind: KindMoney},
	{Title: "الاجمالي", Field: "total", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "تاريخ الصلاحية", Field: "expiryDate", Width: 13, Align: AlignCenter, Kind: KindDate},
	{Title: "المورد", Field: "supplier", Width: 20, Align: AlignRight, Kind: KindText},
	{Title: "تاريخ العملية", Field: "operationDate", Width: 13, Align: AlignCenter, Kind: KindDate},
	{Title: "نوع العملية", Field: "operationType", Width: 11, Align: AlignCenter, Kind: KindText},
	{Title: "رقم السجل", Field: "recordNumber", Width: 10, Align: AlignCenter, Kind: KindText},
	{Title: "كمية مرتجعة", Field: "returnedQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "كمية المبيعات", Field: "soldQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "كمية الجرد", Field: "countQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "القائمة", Field: "list", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "ملاحظات", Field: "notes", Width: 18, Align: AlignRight, Kind: KindText},
}

// NetSalesColumns mirrors the purchases list without supplier and count
// columns.
var NetSalesColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "الكمية", Field: "quantity", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الافرادي", Field: "unitPrice", Width: 10, Align: AlignCenter, Kind: KindMoney},
	{Title: "الاجمالي", Field: "total", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "تاريخ العملية", Field: "operationDate", Width: 13, Align: AlignCenter, Kind: KindDate},
	{Title: "نوع العملية", Field: "operationType", Width: 11, Align: AlignCenter, Kind: KindText},
	{Title: "رقم السجل", Field: "recordNumber", Width: 10, Align: AlignCenter, Kind: KindText},
	{Title: "كمية مرتجعة", Field: "returnedQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "القائمة", Field: "list", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "ملاحظات", Field: "notes", Width: 18, Align: AlignRight, Kind: KindText},
}

// PhysicalColumns covers the prepared count and its adjustments.
var PhysicalColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "الكمية", Field: "quantity", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الافرادي", Field: "unitPrice", Width: 10, Align: AlignCenter, Kind: KindMoney},
	{Title: "تاريخ الصلاحية", Field: "expiryDate", Width: 13, Align: AlignCenter, Kind: KindDate},
	{Title: "رقم السجل", Field: "recordNumber", Width: 10, Align: AlignCenter, Kind: KindText},
	{Title: "القائمة", Field: "list", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "ملاحظات", Field: "notes", Width: 18, Align: AlignRight, Kind: KindText},
}

var ExcessColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "الرصيد", Field: "onHandQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "كمية المبيعات", Field: "soldQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "مخزون مثالي", Field: "idealQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "فائض المخزون", Field: "surplusQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الاحتياج", Field: "needQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "قيمة الفائض", Field: "surplusValue", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة الاحتياج", Field: "needValue", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "بيان الحركة", Field: "status", Width: 12, Align: AlignCenter, Kind: KindText},
}

var SalesCostColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "الكمية", Field: "quantity", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "سعر البيع", Field: "salePrice", Width: 10, Align: AlignCenter, Kind: KindMoney},
	{Title: "اجمالي البيع", Field: "saleTotal", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "التكلفة الافرادية", Field: "unitCost", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "اجمالي التكلفة", Field: "costTotal", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "الربح", Field: "profit", Width: 11, Align: AlignCenter, Kind: KindMoney},
	{Title: "نسبة الربح", Field: "marginPercent", Width: 10, Align: AlignCenter, Kind: KindPercent},
	{Title: "تاريخ العملية", Field: "operationDate", Width: 13, Align: AlignCenter, Kind: KindDate},
	{Title: "البيان", Field: "statement", Width: 12, Align: AlignCenter, Kind: KindText},
}

var ProfitabilityColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "الكمية المباعة", Field: "soldQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الايرادات", Field: "revenue", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "التكلفة", Field: "cost", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "الربح", Field: "profit", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "نسبة الربح", Field: "marginPercent", Width: 10, Align: AlignCenter, Kind: KindPercent},
	{Title: "نسبة المساهمة", Field: "contributionPercent", Width: 11, Align: AlignCenter, Kind: KindPercent},
}

var ABCColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "القيمة", Field: "value", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "النسبة", Field: "valuePercent", Width: 9, Align: AlignCenter, Kind: KindPercent},
	{Title: "النسبة التراكمية", Field: "cumulativePercent", Width: 12, Align: AlignCenter, Kind: KindPercent},
	{Title: "التصنيف", Field: "class", Width: 8, Align: AlignCenter, Kind: KindText},
}

var TurnoverColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "الكمية المباعة", Field: "soldQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الرصيد", Field: "onHandQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "متوسط المخزون", Field: "avgInventory", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "معدل الدوران", Field: "turnoverRate", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "ايام التغطية", Field: "daysOfSupply", Width: 10, Align: AlignCenter, Kind: KindQuantity},
}

var ReplenishmentColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "الرصيد", Field: "onHandQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "استهلاك الفترة", Field: "windowSoldQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الاستهلاك اليومي", Field: "avgDailyQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "ايام التغطية", Field: "coverDays", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "مخزون مثالي", Field: "idealQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "كمية الطلب", Field: "gapQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الاولوية", Field: "urgency", Width: 10, Align: AlignCenter, Kind: KindText},
	{Title: "المورد", Field: "supplier", Width: 20, Align: AlignRight, Kind: KindText},
	{Title: "الافرادي", Field: "unitPrice", Width: 10, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة الطلب", Field: "gapValue", Width: 12, Align: AlignCenter, Kind: KindMoney},
}

var PayablesColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز الحساب", Field: "accountCode", Width: 11, Align: AlignCenter, Kind: KindText},
	{Title: "المورد", Field: "supplier", Width: 22, Align: AlignRight, Kind: KindText},
	{Title: "الحساب الفرعي", Field: "subAccount", Width: 13, Align: AlignRight, Kind: KindText},
	{Title: "مدين", Field: "debit", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "دائن", Field: "credit", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "الرصيد", Field: "balance", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة المخزون", Field: "inventoryValue", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة الفائض", Field: "surplusValue", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة قرب الصلاحية", Field: "expiryRiskValue", Width: 13, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة معد للارجاع", Field: "returnPreparedValue", Width: 13, Align: AlignCenter, Kind: KindMoney},
	{Title: "قيمة صنف جديد", Field: "newItemValue", Width: 13, Align: AlignCenter, Kind: KindMoney},
	{Title: "المستحق", Field: "payable", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "المبلغ الواجب", Field: "amountDue", Width: 12, Align: AlignCenter, Kind: KindMoney},
}

var ItemsColumns = []Column{
	{Title: "م", Field: "index", Width: 5, Align: AlignCenter, Kind: KindInt},
	{Title: "رمز المادة", Field: "materialCode", Width: 12, Align: AlignCenter, Kind: KindText},
	{Title: "اسم المادة", Field: "materialName", Width: 28, Align: AlignRight, Kind: KindText},
	{Title: "الوحدة", Field: "unit", Width: 8, Align: AlignCenter, Kind: KindText},
	{Title: "المشتريات", Field: "purchasedQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "مرتجع المشتريات", Field: "purchaseReturnQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "المبيعات", Field: "soldQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "مرتجع المبيعات", Field: "saleReturnQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الرصيد الدفتري", Field: "expectedQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "رصيد الجرد", Field: "physicalQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "الفرق", Field: "deltaQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "فائض المخزون", Field: "surplusQty", Width: 11, Align: AlignCenter, Kind: KindQuantity},
	{Title: "قيمة الفائض", Field: "surplusValue", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "الاحتياج", Field: "needQty", Width: 10, Align: AlignCenter, Kind: KindQuantity},
	{Title: "قيمة الاحتياج", Field: "needValue", Width: 12, Align: AlignCenter, Kind: KindMoney},
	{Title: "الحالة", Field: "status", Width: 11, Align: AlignCenter, Kind: KindText},
}
