package extract

import (
	"math"
	"strconv"
	"strings"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// ParseMoney coerces a cell to a currency amount. Numbers pass through;
// text is stripped to digits, minus signs, and decimal points before
// parsing. Empty or unparseable input yields 0.0 — never an error.
func ParseMoney(c model.Cell) float64 {
	switch c.Kind {
	case model.CellEmpty:
		return 0
	case model.CellNumber:
		return c.Number
	}

	var b strings.Builder
	for _, r := range c.String() {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Round2 rounds to two decimal places, half away from zero. Amounts are
// rounded before being written or combined further so summing them twice
// (per unit, then globally) stays drift-free.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
