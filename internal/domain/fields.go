package domain

// Canonical field identifiers. All internal processing keys off these;
// localized sheet headers are translated at the import boundary.
const (
	FieldIndex         = "index"
	FieldMaterialCode  = "materialCode"
	FieldMaterialName  = "materialName"
	FieldUnit          = "unit"
	FieldQuantity      = "quantity"
	FieldUnitPrice     = "unitPrice"
	FieldExpiryDate    = "expiryDate"
	FieldSupplier      = "supplier"
	FieldOperationDate = "operationDate"
	FieldOperationType = "operationType"
	FieldRecordNumber  = "recordNumber"
	FieldNotes         = "notes"
	FieldDebit         = "debit"
	FieldCredit        = "credit"
	FieldAccountCode   = "accountCode"
	FieldSubAccount    = "subAccount"
)

// FieldType drives how the normalizer coerces a raw cell.
type FieldType int

const (
	FieldString FieldType = iota
	FieldQuantityType
	FieldCurrency
	FieldDate
	FieldInteger
	FieldPercentage
)

// TransactionFieldTypes maps canonical fields of a transaction sheet
// (purchases or sales) to their coercion type.
var TransactionFieldTypes = map[string]FieldType{
	FieldIndex:         FieldInteger,
	FieldMaterialCode:  FieldString,
	FieldMaterialName:  FieldString,
	FieldUnit:          FieldString,
	FieldQuantity:      FieldQuantityType,
	FieldUnitPrice:     FieldCurrency,
	FieldExpiryDate:    FieldDate,
	FieldSupplier:      FieldString,
	FieldOperationDate: FieldDate,
	FieldOperationType: FieldString,
	FieldRecordNumber:  FieldString,
	FieldNotes:         FieldString,
}

// CountFieldTypes maps the physical-inventory sheet fields.
var CountFieldTypes = map[string]FieldType{
	FieldIndex:        FieldInteger,
	FieldMaterialCode: FieldString,
	FieldMaterialName: FieldString,
	FieldUnit:         FieldString,
	FieldQuantity:     FieldQuantityType,
	FieldUnitPrice:    FieldCurrency,
	FieldExpiryDate:   FieldDate,
	FieldRecordNumber: FieldString,
	FieldNotes:        FieldString,
}

// BalanceFieldTypes maps the supplier-balances sheet fields.
var BalanceFieldTypes = map[string]FieldType{
	FieldIndex:       FieldInteger,
	FieldAccountCode: FieldString,
	FieldSupplier:    FieldString,
	FieldDebit:       FieldCurrency,
	FieldCredit:      FieldCurrency,
	FieldSubAccount:  FieldString,
}
