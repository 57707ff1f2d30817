// Package xlsx decodes extract attachments from workbook bytes into cell
// tables.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// Decoder reads the first worksheet of an xlsx workbook.
type Decoder struct{}

// NewDecoder creates an xlsx decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses workbook bytes and returns the first worksheet as a cell
// table. Formula results are read as displayed values; excelize trims
// trailing empty cells per row, which downstream scans treat as short
// rows.
func (d *Decoder) Decode(data []byte) (model.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return model.Table{}, fmt.Errorf("workbook has no worksheets")
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to read worksheet %q: %w", sheetList[0], err)
	}

	table := model.Table{Rows: make([]model.Row, len(rows))}
	for i, raw := range rows {
		row := make(model.Row, len(raw))
		for j, cell := range raw {
			row[j] = model.CellOf(cell)
		}
		table.Rows[i] = row
	}
	return table, nil
}
