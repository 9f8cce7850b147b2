package workbook

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hmshaban/jard-backend/internal/report"
)

// sheetGrid is one rendered sheet ready to stream into the file.
type sheetGrid struct {
	name   string
	widths []float64
	cells  [][]interface{}
}

// Export writes the report tables to w as one xlsx workbook, one sheet
// per table in presentation order. Rendering the cell grids is fanned
// out; the file itself is written sequentially because excelize files
// are not safe for concurrent writes.
func Export(w io.Writer, tables map[string]report.Table) error {
	names := report.Names()
	grids := make([]*sheetGrid, len(names))

	var g errgroup.Group
	for i, name := range names {
		table, ok := tables[name]
		if !ok {
			continue
		}
		i, table := i, table
		g.Go(func() error {
			grids[i] = renderGrid(table)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, grid := range grids {
		if grid == nil {
			continue
		}
		if err := writeSheet(f, grid, first); err != nil {
			return err
		}
		first = false
	}
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func renderGrid(table report.Table) *sheetGrid {
	grid := &sheetGrid{
		name:   table.Name,
		widths: make([]float64, len(table.Columns)),
		cells:  make([][]interface{}, 0, len(table.Rows)+1),
	}
	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col.Title
		grid.widths[i] = float64(col.Width)
	}
	grid.cells = append(grid.cells, header)
	for _, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		grid.cells = append(grid.cells, cells)
	}
	return grid
}

func writeSheet(f *excelize.File, grid *sheetGrid, first bool) error {
	if first {
		// reuse the default sheet excelize creates with the file
		if err := f.SetSheetName("Sheet1", grid.name); err != nil {
			return errors.Wrapf(err, "sheet %s", grid.name)
		}
	} else if _, err := f.NewSheet(grid.name); err != nil {
		return errors.Wrapf(err, "sheet %s", grid.name)
	}

	sw, err := f.NewStreamWriter(grid.name)
	if err != nil {
		return errors.Wrapf(err, "sheet %s", grid.name)
	}
	for i, width := range grid.widths {
		if width > 0 {
			if err := sw.SetColWidth(i+1, i+1, width); err != nil {
				return errors.Wrapf(err, "sheet %s", grid.name)
			}
		}
	}
	for i, row := range grid.cells {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrapf(err, "sheet %s", grid.name)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return errors.Wrapf(err, "sheet %s row %d", grid.name, i+1)
		}
	}
	if err := sw.Flush(); err != nil {
		return errors.Wrapf(err, "sheet %s", grid.name)
	}
	return nil
}
