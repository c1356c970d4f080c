package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/albapepper/scoracle-boxscores/internal/table"
)

// XLSXMirror writes tables as a single-sheet workbook named after the table.
type XLSXMirror struct{}

func (XLSXMirror) Ext() string { return "xlsx" }

func (XLSXMirror) Write(w io.Writer, name string, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, name); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("open sheet writer: %w", err)
	}
	if err := sw.SetRow("A1", cellsOf(t.Columns)); err != nil {
		return err
	}
	for i, r := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cellsOf(r)); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

// cellsOf leaves empty cells unset instead of writing empty strings.
func cellsOf(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		if v != "" {
			out[i] = v
		}
	}
	return out
}
