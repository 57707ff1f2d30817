package aggregate

import (
	"fmt"
	"strings"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/common"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/extract"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// CompletedResult is the reduction of a completed extract.
type CompletedResult struct {
	// ByUnit maps unit name -> scalar amount, rounded to cents. Units the
	// policy never resolves hold 0.0.
	ByUnit map[string]float64
	// Global is the whole-extract scalar, rounded to cents.
	Global float64
	Skips  model.SkipCounts
}

// Completed reduces a completed extract to a global scalar and one scalar
// per business unit, under the selected policy.
func Completed(table model.Table, layout model.SheetLayout, policy model.CompletedPolicy) (*CompletedResult, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("%w: completed extract has %d rows", common.ErrEmptyAttachment, len(table.Rows))
	}

	header := table.Header()
	unitCol := extract.ResolveColumn(header, unitColumnNames...)
	subCol := extract.ResolveColumn(header, subtotalColumnNames...)
	if unitCol < 0 || subCol < 0 {
		return nil, fmt.Errorf("%w: completed extract header %v", common.ErrMissingColumn, headerNames(header))
	}

	switch policy {
	case model.PolicySumAll:
		return completedSumAll(table.Body(), layout, unitCol, subCol), nil
	case model.PolicyLastNonBlank:
		return completedLastNonBlank(table.Body(), layout, unitCol, subCol), nil
	default:
		return nil, fmt.Errorf("unknown completed policy %q", policy)
	}
}

// completedLastNonBlank scans from the bottom of the extract. The global
// value is the first non-blank subtotal from the end; each unit takes its
// own first non-blank hit. The scan stops early once every unit resolved.
func completedLastNonBlank(body []model.Row, layout model.SheetLayout, unitCol, subCol int) *CompletedResult {
	result := &CompletedResult{ByUnit: make(map[string]float64, len(layout.Units))}
	for _, name := range layout.UnitNames() {
		result.ByUnit[name] = 0
	}

	// Rows too short to hold the subtotal column are counted once here;
	// both scans below skip them without recounting.
	for _, row := range body {
		if len(row) <= subCol {
			result.Skips.ShortRow++
		}
	}

	for i := len(body) - 1; i >= 0; i-- {
		row := body[i]
		if len(row) <= subCol {
			continue
		}
		if !row.Get(subCol).IsBlank() {
			result.Global = extract.Round2(extract.ParseMoney(row.Get(subCol)))
			break
		}
	}

	remaining := make(map[string]bool, len(layout.Units))
	for _, name := range layout.UnitNames() {
		remaining[name] = true
	}

	maxCol := unitCol
	if subCol > maxCol {
		maxCol = subCol
	}
	for i := len(body) - 1; i >= 0 && len(remaining) > 0; i-- {
		row := body[i]
		if len(row) <= maxCol {
			continue
		}
		unit := strings.ToLower(strings.TrimSpace(row.Get(unitCol).String()))
		if !remaining[unit] {
			continue
		}
		if row.Get(subCol).IsBlank() {
			continue
		}
		result.ByUnit[unit] = extract.Round2(extract.ParseMoney(row.Get(subCol)))
		delete(remaining, unit)
	}

	return result
}

// completedSumAll scans forward and sums every non-blank subtotal into the
// global figure, and into the matching unit's figure when the row names a
// configured unit.
func completedSumAll(body []model.Row, layout model.SheetLayout, unitCol, subCol int) *CompletedResult {
	result := &CompletedResult{ByUnit: make(map[string]float64, len(layout.Units))}
	for _, name := range layout.UnitNames() {
		result.ByUnit[name] = 0
	}

	for _, row := range body {
		if len(row) <= subCol {
			result.Skips.ShortRow++
			continue
		}
		cell := row.Get(subCol)
		if cell.IsBlank() {
			continue
		}
		amount := extract.ParseMoney(cell)
		result.Global += amount

		unit := strings.ToLower(strings.TrimSpace(row.Get(unitCol).String()))
		if layout.HasUnit(unit) {
			result.ByUnit[unit] += amount
		} else {
			result.Skips.UnknownUnit++
		}
	}

	result.Global = extract.Round2(result.Global)
	for name, v := range result.ByUnit {
		result.ByUnit[name] = extract.Round2(v)
	}
	return result
}
