package workbook

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/hmshaban/jard-backend/internal/engine"
	"github.com/hmshaban/jard-backend/internal/normalize"
)

// ParseFile reads a workbook from disk into engine input.
func ParseFile(path string) (engine.Input, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return engine.Input{}, errors.Wrap(err, "open workbook")
	}
	defer f.Close()
	return parse(f)
}

// Parse reads a workbook from a stream, typically an HTTP upload.
func Parse(r io.Reader) (engine.Input, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return engine.Input{}, errors.Wrap(err, "open workbook")
	}
	defer f.Close()
	return parse(f)
}

// parse maps recognized sheets onto the canonical input slots. Sheets
// that match no alias are ignored; missing sheets stay empty and the
// engine degrades to empty report lists for them.
func parse(f *excelize.File) (engine.Input, error) {
	input := engine.Input{
		Purchases: normalize.RawSheet{Name: SheetPurchases},
		Sales:     normalize.RawSheet{Name: SheetSales},
		Physical:  normalize.RawSheet{Name: SheetPhysical},
		Balances:  normalize.RawSheet{Name: SheetBalances},
	}
	for _, name := range f.GetSheetList() {
		key, ok := sheetAliases[normalizeName(name)]
		if !ok {
			continue
		}
		sheet, err := readSheet(f, name, key)
		if err != nil {
			return engine.Input{}, err
		}
		switch key {
		case SheetPurchases:
			input.Purchases = sheet
		case SheetSales:
			input.Sales = sheet
		case SheetPhysical:
			input.Physical = sheet
		case SheetBalances:
			input.Balances = sheet
		}
	}
	return input, nil
}

// readSheet streams one sheet into raw rows keyed by canonical field
// identifiers. The first non-empty row is the header; unrecognized
// header cells are skipped so extra spreadsheet columns do no harm.
func readSheet(f *excelize.File, sheetName, key string) (normalize.RawSheet, error) {
	rows, err := f.Rows(sheetName)
	if err != nil {
		return normalize.RawSheet{}, errors.Wrapf(err, "read sheet %s", sheetName)
	}
	defer rows.Close()

	sheet := normalize.RawSheet{Name: key}
	var header map[int]string
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return normalize.RawSheet{}, errors.Wrapf(err, "read sheet %s", sheetName)
		}
		if emptyRow(cells) {
			continue
		}
		if header == nil {
			header = make(map[int]string, len(cells))
			for i, cell := range cells {
				if field, ok := columnAliases[normalizeName(cell)]; ok {
					header[i] = field
				}
			}
			if missing := missingColumns(key, header); len(missing) > 0 {
				return normalize.RawSheet{}, &engine.MissingDataError{Sheet: key, Columns: missing}
			}
			continue
		}
		raw := make(normalize.RawRow, len(header))
		for i, cell := range cells {
			field, ok := header[i]
			if !ok {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				raw[field] = v
			}
		}
		if len(raw) > 0 {
			sheet.Rows = append(sheet.Rows, raw)
		}
	}
	if err := rows.Error(); err != nil {
		return normalize.RawSheet{}, errors.Wrapf(err, "read sheet %s", sheetName)
	}
	return sheet, nil
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func missingColumns(key string, header map[int]string) []string {
	present := make(map[string]bool, len(header))
	for _, field := range header {
		present[field] = true
	}
	var missing []string
	for _, field := range requiredColumns[key] {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}
