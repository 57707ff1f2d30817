package planner

import (
	"sort"
	"time"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/aggregate"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/extract"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// Indices holds one row index per date column of the destination tab.
type Indices struct {
	ByUnit map[string]RowIndex
	Global RowIndex
}

// PlanUpcoming plans the scheduled-revenue writes for an upcoming
// aggregation: global totals first, then each unit in layout order, dates
// ascending. Only dates strictly after the anchor are eligible; dates
// absent from a column's index are skipped without creating rows.
func PlanUpcoming(layout model.SheetLayout, result *aggregate.UpcomingResult, ix Indices) []model.CellWrite {
	var writes []model.CellWrite

	global := make(map[time.Time]float64)
	for _, dates := range result.Totals {
		for d, amt := range dates {
			global[d] += amt
		}
	}

	for _, d := range sortedDates(global) {
		if !d.After(result.Anchor) {
			continue
		}
		row := ix.Global.Row(d)
		if row == 0 {
			continue
		}
		writes = append(writes, model.SetCell(row, layout.ScheduledCol, extract.Round2(global[d])))
	}

	for _, unit := range layout.Units {
		totals := result.Totals[unit.Name]
		index := ix.ByUnit[unit.Name]
		for _, d := range sortedDates(totals) {
			if !d.After(result.Anchor) {
				continue
			}
			row := index.Row(d)
			if row == 0 {
				continue
			}
			writes = append(writes, model.SetCell(row, unit.ScheduledCol, totals[d]))
		}
	}

	return writes
}

// PlanCompleted plans the completed-revenue writes for a file date: at the
// global row and at each unit's row, set the completed cell and clear the
// scheduled cell. Whatever was scheduled for that date is superseded by
// the completed figure. Rows absent for the file date are skipped.
func PlanCompleted(layout model.SheetLayout, fileDate time.Time, result *aggregate.CompletedResult, ix Indices) []model.CellWrite {
	var writes []model.CellWrite

	if row := ix.Global.Row(fileDate); row != 0 {
		writes = append(writes,
			model.SetCell(row, layout.CompletedCol, result.Global),
			model.ClearCell(row, layout.ScheduledCol),
		)
	}

	for _, unit := range layout.Units {
		row := ix.ByUnit[unit.Name].Row(fileDate)
		if row == 0 {
			continue
		}
		writes = append(writes,
			model.SetCell(row, unit.CompletedCol, result.ByUnit[unit.Name]),
			model.ClearCell(row, unit.ScheduledCol),
		)
	}

	return writes
}

func sortedDates(m map[time.Time]float64) []time.Time {
	dates := make([]time.Time, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
