package model

import (
	"fmt"
	"strings"
)

// BusinessUnit maps one named unit to its column group in the destination
// tab. Columns are 1-based sheet positions.
type BusinessUnit struct {
	Name         string `mapstructure:"name"`
	DateCol      int    `mapstructure:"date_col"`
	CompletedCol int    `mapstructure:"completed_col"`
	ScheduledCol int    `mapstructure:"scheduled_col"`
}

// SheetLayout describes the destination tab: the global column group plus
// one group per business unit. The unit set is closed for a run; source
// rows naming anything else are excluded from aggregation.
type SheetLayout struct {
	DateCol      int            `mapstructure:"date_col"`
	CompletedCol int            `mapstructure:"completed_col"`
	ScheduledCol int            `mapstructure:"scheduled_col"`
	Units        []BusinessUnit `mapstructure:"units"`
}

// DefaultLayout returns the production tab layout: the six-column base
// table plus five unit column groups.
func DefaultLayout() SheetLayout {
	return SheetLayout{
		DateCol:      2,
		CompletedCol: 4,
		ScheduledCol: 5,
		Units: []BusinessUnit{
			{Name: "arlington", DateCol: 9, CompletedCol: 11, ScheduledCol: 12},
			{Name: "carrollton", DateCol: 16, CompletedCol: 18, ScheduledCol: 19},
			{Name: "colleyville", DateCol: 23, CompletedCol: 25, ScheduledCol: 26},
			{Name: "dallas", DateCol: 30, CompletedCol: 32, ScheduledCol: 33},
			{Name: "denton", DateCol: 37, CompletedCol: 39, ScheduledCol: 40},
		},
	}
}

// UnitNames returns the configured unit names in layout order.
func (l SheetLayout) UnitNames() []string {
	names := make([]string, len(l.Units))
	for i, u := range l.Units {
		names[i] = u.Name
	}
	return names
}

// HasUnit reports whether name (already trimmed/lowercased) is configured.
func (l SheetLayout) HasUnit(name string) bool {
	for _, u := range l.Units {
		if u.Name == name {
			return true
		}
	}
	return false
}

// Validate checks the layout for usable column positions and unit names.
func (l SheetLayout) Validate() error {
	if l.DateCol < 1 || l.CompletedCol < 1 || l.ScheduledCol < 1 {
		return fmt.Errorf("global columns must be 1-based positive positions")
	}
	if len(l.Units) == 0 {
		return fmt.Errorf("layout has no business units")
	}
	seen := make(map[string]bool, len(l.Units))
	for _, u := range l.Units {
		name := strings.TrimSpace(strings.ToLower(u.Name))
		if name == "" {
			return fmt.Errorf("business unit with empty name")
		}
		if name != u.Name {
			return fmt.Errorf("business unit %q must be trimmed lowercase", u.Name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate business unit %q", name)
		}
		seen[name] = true
		if u.DateCol < 1 || u.CompletedCol < 1 || u.ScheduledCol < 1 {
			return fmt.Errorf("business unit %q has non-positive column positions", name)
		}
	}
	return nil
}
