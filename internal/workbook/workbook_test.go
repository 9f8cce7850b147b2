package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/engine"
	"github.com/hmshaban/jard-backend/internal/report"
)

func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return bytes.NewReader(buf.Bytes())
}

func TestParseMapsArabicSheetAndHeaderAliases(t *testing.T) {
	src := buildWorkbook(t, map[string][][]interface{}{
		"المشتريات": {
			{"م", "رمز المادة", "اسم المادة", "الوحدة", "الكمية", "الافرادي", "المورد", "تاريخ العملية", "نوع العملية"},
			{1, "A-1", "باراسيتامول", "علبة", 10, 1500, "acme", "2025-01-05", "شراء"},
			{2, "B-2", "مرهم", "انبوب", 4, 800, "acme", "2025-02-01", "شراء"},
		},
		"الجرد": {
			{"رمز المادة", "اسم المادة", "الكمية", "الافرادي"},
			{"A-1", "باراسيتامول", 7, 1500},
		},
	})

	input, err := Parse(src)
	require.NoError(t, err)

	require.Len(t, input.Purchases.Rows, 2)
	assert.Equal(t, SheetPurchases, input.Purchases.Name)
	assert.Equal(t, "A-1", input.Purchases.Rows[0][domain.FieldMaterialCode])
	assert.Equal(t, "10", input.Purchases.Rows[0][domain.FieldQuantity])
	assert.Equal(t, "شراء", input.Purchases.Rows[0][domain.FieldOperationType])

	require.Len(t, input.Physical.Rows, 1)
	assert.Equal(t, "7", input.Physical.Rows[0][domain.FieldQuantity])

	// absent sheets stay empty rather than failing the import
	assert.Empty(t, input.Sales.Rows)
	assert.Empty(t, input.Balances.Rows)
}

func TestParseSkipsUnknownSheetsAndColumns(t *testing.T) {
	src := buildWorkbook(t, map[string][][]interface{}{
		"sales": {
			{"code", "name", "qty", "price", "internal remark"},
			{"A-1", "item", 3, 2000, "ignore me"},
		},
		"scratchpad": {
			{"whatever"},
			{"junk"},
		},
	})

	input, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, input.Sales.Rows, 1)
	row := input.Sales.Rows[0]
	assert.Equal(t, "A-1", row[domain.FieldMaterialCode])
	assert.NotContains(t, row, domain.FieldNotes)
	assert.Empty(t, input.Purchases.Rows)
}

func TestParseMissingRequiredColumns(t *testing.T) {
	src := buildWorkbook(t, map[string][][]interface{}{
		"purchases": {
			{"code", "name"},
			{"A-1", "item"},
		},
	})

	_, err := Parse(src)
	var missing *engine.MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, SheetPurchases, missing.Sheet)
	assert.ElementsMatch(t, []string{domain.FieldQuantity, domain.FieldUnitPrice}, missing.Columns)
}

func TestParseSkipsBlankLeadingRows(t *testing.T) {
	src := buildWorkbook(t, map[string][][]interface{}{
		"supplier balances": {
			{"", "", ""},
			{"المورد", "مدين", "دائن"},
			{"acme", 0, 5000},
			{"", "", ""},
		},
	})

	input, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, input.Balances.Rows, 1)
	assert.Equal(t, "5000", input.Balances.Rows[0][domain.FieldCredit])
}

func TestExportWritesOneSheetPerTable(t *testing.T) {
	tables := map[string]report.Table{
		report.NameABC: {
			Name:    report.NameABC,
			Columns: report.ABCColumns,
			Rows: [][]string{
				{"1", "A-1", "item", "12,000", "80%", "80%", "A"},
			},
		},
		report.NamePayables: {
			Name:    report.NamePayables,
			Columns: report.PayablesColumns,
			Rows:    [][]string{},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, tables))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{report.NameABC, report.NamePayables}, f.GetSheetList())

	title, err := f.GetCellValue(report.NameABC, "A1")
	require.NoError(t, err)
	assert.Equal(t, report.ABCColumns[0].Title, title)

	code, err := f.GetCellValue(report.NameABC, "B2")
	require.NoError(t, err)
	assert.Equal(t, "A-1", code)
}
