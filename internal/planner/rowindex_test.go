package planner

import (
	"testing"
	"time"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildRowIndex(t *testing.T) {
	column := []model.Cell{
		model.TextCell("Date"), // header, row 1
		model.TextCell("2024-03-01"),
		model.TextCell("3/2/2024"),
		model.EmptyCell,
		model.TextCell("notes"),
		model.DateCell(day(2024, 3, 5)),
	}

	ix := BuildRowIndex(column)

	assert.Equal(t, 2, ix.Row(day(2024, 3, 1)))
	assert.Equal(t, 3, ix.Row(day(2024, 3, 2)))
	assert.Equal(t, 6, ix.Row(day(2024, 3, 5)))
	assert.Len(t, ix, 3)
}

func TestBuildRowIndexHeaderNeverIndexed(t *testing.T) {
	// Even a date-looking header cell is skipped.
	column := []model.Cell{
		model.TextCell("2024-03-01"),
		model.TextCell("2024-03-02"),
	}

	ix := BuildRowIndex(column)

	assert.Equal(t, 0, ix.Row(day(2024, 3, 1)))
	assert.Equal(t, 2, ix.Row(day(2024, 3, 2)))
}

func TestBuildRowIndexDuplicateDateLaterRowWins(t *testing.T) {
	column := []model.Cell{
		model.TextCell("Date"),
		model.TextCell("2024-03-01"),
		model.TextCell("2024-03-01"),
	}

	ix := BuildRowIndex(column)

	assert.Equal(t, 3, ix.Row(day(2024, 3, 1)))
}

func TestRowIndexMissingDate(t *testing.T) {
	ix := BuildRowIndex([]model.Cell{model.TextCell("Date")})
	assert.Equal(t, 0, ix.Row(day(2024, 1, 1)))
}

func TestRowIndexLookupIgnoresTimeOfDay(t *testing.T) {
	column := []model.Cell{
		model.TextCell("Date"),
		model.TextCell("2024-03-01"),
	}
	ix := BuildRowIndex(column)

	assert.Equal(t, 2, ix.Row(time.Date(2024, 3, 1, 18, 45, 0, 0, time.UTC)))
}
