// Package model defines the core types shared across the reconciliation
// pipeline: loosely-typed cells, the sheet layout, planned writes, and the
// per-run report.
package model

import (
	"fmt"
	"strings"
	"time"
)

// CellKind discriminates the value held by a Cell.
type CellKind int

// Cell kinds. Source extracts and the destination sheet mix numbers, text,
// dates, and blanks freely within a single column, so every cell is carried
// as a tagged variant and coerced only at the point of use.
const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellDate
)

// Cell is a single loosely-typed spreadsheet value.
type Cell struct {
	Text   string
	Date   time.Time
	Number float64
	Kind   CellKind
}

// Row is one ordered row of cells from a source table or sheet column.
type Row []Cell

// Table is a parsed tabular document. Row 0 is the header.
type Table struct {
	Rows []Row
}

// EmptyCell is the zero Cell.
var EmptyCell = Cell{Kind: CellEmpty}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// DateCell returns a date cell, truncated to calendar-date granularity.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Date: DateOnly(t)} }

// CellOf coerces a native Go value into a Cell. Nil and empty strings map
// to CellEmpty; unknown types are stringified.
func CellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return EmptyCell
	case Cell:
		return x
	case string:
		if x == "" {
			return EmptyCell
		}
		return TextCell(x)
	case float64:
		return NumberCell(x)
	case float32:
		return NumberCell(float64(x))
	case int:
		return NumberCell(float64(x))
	case int64:
		return NumberCell(float64(x))
	case time.Time:
		return DateCell(x)
	default:
		return TextCell(fmt.Sprintf("%v", x))
	}
}

// IsBlank reports whether the cell is empty or whitespace-only text.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

// String renders the cell the way a sheet displays it.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return fmt.Sprintf("%g", c.Number)
	case CellText:
		return c.Text
	case CellDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Get returns the cell at index i, or EmptyCell if the row is too short.
func (r Row) Get(i int) Cell {
	if i < 0 || i >= len(r) {
		return EmptyCell
	}
	return r[i]
}

// Header returns the header row, or nil for an empty table.
func (t Table) Header() Row {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// Body returns the data rows below the header.
func (t Table) Body() []Row {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// DateOnly truncates t to UTC midnight. All date comparisons in the
// pipeline happen at calendar-date granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
