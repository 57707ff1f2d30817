package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasUnit(t *testing.T) {
	layout := DefaultLayout()

	assert.True(t, layout.HasUnit("dallas"))
	assert.True(t, layout.HasUnit("arlington"))
	// Lookup is exact; callers normalize before asking.
	assert.False(t, layout.HasUnit("Dallas"))
	assert.False(t, layout.HasUnit("fort worth"))
	assert.False(t, layout.HasUnit(""))
}

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, DefaultLayout().Validate())

	tests := []struct {
		name   string
		mutate func(*SheetLayout)
	}{
		{"no units", func(l *SheetLayout) { l.Units = nil }},
		{"empty unit name", func(l *SheetLayout) { l.Units[0].Name = "" }},
		{"unnormalized unit name", func(l *SheetLayout) { l.Units[0].Name = " Dallas" }},
		{"duplicate unit", func(l *SheetLayout) { l.Units[1].Name = l.Units[0].Name }},
		{"zero global column", func(l *SheetLayout) { l.DateCol = 0 }},
		{"zero unit column", func(l *SheetLayout) { l.Units[0].ScheduledCol = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := DefaultLayout()
			tt.mutate(&layout)
			assert.Error(t, layout.Validate())
		})
	}
}
