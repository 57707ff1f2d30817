// Package aggregate reduces parsed extract tables to the figures written
// into the tracking sheet: per-unit per-date subtotal sums for the
// upcoming document, and global plus per-unit scalars for the completed
// document.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/common"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/extract"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// Semantic column names resolved in extract headers.
var (
	unitColumnNames     = []string{"business unit"}
	dateColumnNames     = []string{"next appt start date"}
	subtotalColumnNames = []string{"jobs subtotal", "subtotal"}
)

// UpcomingResult is the reduction of an upcoming extract.
type UpcomingResult struct {
	// Totals maps unit name -> date -> summed subtotal, rounded to cents.
	Totals map[string]map[time.Time]float64
	// Anchor is the minimum date observed across all rows. The extract is
	// regenerated daily and its earliest date is "today" as the producer
	// understands it; only dates strictly after it get written.
	Anchor time.Time
	Skips  model.SkipCounts
}

// Upcoming scans an upcoming extract and sums subtotals per business unit
// and appointment date. Rows with short length, unrecognized units, or
// unparseable dates are counted and skipped, never fatal.
func Upcoming(table model.Table, layout model.SheetLayout) (*UpcomingResult, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("%w: upcoming extract has %d rows", common.ErrEmptyAttachment, len(table.Rows))
	}

	header := table.Header()
	unitCol := extract.ResolveColumn(header, unitColumnNames...)
	dateCol := extract.ResolveColumn(header, dateColumnNames...)
	subCol := extract.ResolveColumn(header, subtotalColumnNames...)
	if unitCol < 0 || dateCol < 0 || subCol < 0 {
		return nil, fmt.Errorf("%w: upcoming extract header %v", common.ErrMissingColumn, headerNames(header))
	}

	maxCol := unitCol
	if dateCol > maxCol {
		maxCol = dateCol
	}
	if subCol > maxCol {
		maxCol = subCol
	}

	result := &UpcomingResult{Totals: make(map[string]map[time.Time]float64, len(layout.Units))}
	for _, name := range layout.UnitNames() {
		result.Totals[name] = make(map[time.Time]float64)
	}

	var anchor time.Time
	var sawDate bool
	for _, row := range table.Body() {
		if len(row) <= maxCol {
			result.Skips.ShortRow++
			continue
		}

		unit := strings.ToLower(strings.TrimSpace(row.Get(unitCol).String()))
		if !layout.HasUnit(unit) {
			result.Skips.UnknownUnit++
			continue
		}

		date, ok := extract.ParseDate(row.Get(dateCol))
		if !ok {
			result.Skips.BadDate++
			continue
		}

		amount := extract.ParseMoney(row.Get(subCol))
		result.Totals[unit][date] += amount

		if !sawDate || date.Before(anchor) {
			anchor = date
			sawDate = true
		}
	}

	if !sawDate {
		return nil, fmt.Errorf("%w: upcoming extract", common.ErrNoValidDates)
	}
	result.Anchor = anchor

	for _, dates := range result.Totals {
		for d, v := range dates {
			dates[d] = extract.Round2(v)
		}
	}
	return result, nil
}

func headerNames(header model.Row) []string {
	names := make([]string, len(header))
	for i, c := range header {
		names[i] = c.String()
	}
	return names
}
