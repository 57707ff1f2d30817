package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/common"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// Text date formats tried in order. The extracts mix US-style and ISO
// representations within a single column. Unpadded layouts accept both
// "3/5/2024" and "03/05/2024".
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-1-2",
	"2006/1/2",
}

// ParseDate coerces a cell to a calendar date. Native date cells pass
// through; text runs the format ladder and then a general ISO-8601 parse.
// ok is false when nothing applies — callers skip the row, never fail.
func ParseDate(c model.Cell) (time.Time, bool) {
	if c.Kind == model.CellDate {
		return model.DateOnly(c.Date), true
	}

	s := strings.TrimSpace(c.String())
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOnly(t), true
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return model.DateOnly(t), true
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return model.DateOnly(t), true
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return model.DateOnly(t), true
	}
	return time.Time{}, false
}

// filenameDatePattern matches the first run of three numeric groups
// separated by dots, dashes, or underscores.
var filenameDatePattern = regexp.MustCompile(`(\d{1,4})[._-](\d{1,2})[._-](\d{1,4})`)

// FilenameDate derives a calendar date from a free-form filename. A first
// group above 31 reads as YYYY-MM-DD; otherwise MM-DD-YY(YY), with
// two-digit years expanded by adding 2000. The completed pipeline has no
// other date source, so failure here is fatal for that document.
func FilenameDate(filename string) (time.Time, error) {
	m := filenameDatePattern.FindStringSubmatch(filename)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", common.ErrUnparseableFilenameDate, filename)
	}

	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	c, _ := strconv.Atoi(m[3])

	var year, month, day int
	if a > 31 {
		year, month, day = a, b, c
	} else {
		month, day = a, b
		year = c
		if year < 100 {
			year += 2000
		}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; a changed month or day
	// means the triplet was not a real date.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q has impossible date %04d-%02d-%02d", common.ErrUnparseableFilenameDate, filename, year, month, day)
	}
	return t, nil
}
