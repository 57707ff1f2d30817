// Package planner turns aggregation results and the live sheet's date
// columns into an ordered batch of idempotent cell writes.
package planner

import (
	"time"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/extract"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// RowIndex maps calendar dates to 1-based row numbers within one sheet
// column. Each date column gets its own index: the global column and a
// unit's column may place the same date on different rows.
type RowIndex map[time.Time]int

// BuildRowIndex indexes a date column as read from the sheet, header row
// included. Row 1 is always treated as the header and skipped. Cells that
// do not parse as dates are skipped. When a date repeats within the
// column, the higher row number wins.
func BuildRowIndex(column []model.Cell) RowIndex {
	index := make(RowIndex)
	for i, cell := range column {
		row := i + 1
		if row == 1 {
			continue
		}
		if d, ok := extract.ParseDate(cell); ok {
			index[d] = row
		}
	}
	return index
}

// Row returns the row number holding date, or 0 when absent.
func (ix RowIndex) Row(date time.Time) int {
	return ix[model.DateOnly(date)]
}
