// Package extract normalizes the heterogeneous values found in source
// extracts: header names to column positions, loose cells to calendar
// dates and currency amounts, and filenames to dates.
package extract

import (
	"strings"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

// ResolveColumn maps a header row to the index of one semantic column.
// Candidates must be trimmed lowercase. Exact matches win over substring
// matches; within each pass the first header cell wins. Returns -1 when
// the column cannot be resolved.
func ResolveColumn(header model.Row, candidates ...string) int {
	names := make([]string, len(header))
	for i, c := range header {
		names[i] = strings.ToLower(strings.TrimSpace(c.String()))
	}

	for i, name := range names {
		for _, cand := range candidates {
			if name == cand {
				return i
			}
		}
	}
	for i, name := range names {
		for _, cand := range candidates {
			if strings.Contains(name, cand) {
				return i
			}
		}
	}
	return -1
}
