package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{30, "AD"},
		{37, "AK"},
		{40, "AN"},
		{52, "AZ"},
		{53, "BA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ColumnLetter(tt.col), "column %d", tt.col)
	}
}

func TestMockTabApplyBatchMutatesCells(t *testing.T) {
	store := NewMockStore()
	tab := store.AddTab("February", map[[2]int]model.Cell{
		{1, 2}: model.TextCell("Date"),
		{2, 2}: model.TextCell("2024-03-05"),
	})

	ctx := context.Background()
	opened, err := store.OpenTab(ctx, "February")
	require.NoError(t, err)

	writes := []model.CellWrite{
		model.SetCell(2, 4, 500.0),
		model.ClearCell(2, 5),
	}
	require.NoError(t, opened.ApplyBatch(ctx, writes))

	assert.Equal(t, model.NumberCell(500.0), tab.Cell(2, 4))
	assert.True(t, tab.Cell(2, 5).IsBlank())
	require.Len(t, tab.Batches, 1)
}

func TestMockTabReadColumn(t *testing.T) {
	store := NewMockStore()
	store.AddTab("February", map[[2]int]model.Cell{
		{1, 2}: model.TextCell("Date"),
		{3, 2}: model.TextCell("2024-03-05"),
	})

	opened, err := store.OpenTab(context.Background(), "February")
	require.NoError(t, err)

	cells, err := opened.ReadColumn(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, cells, 3)
	assert.Equal(t, "Date", cells[0].String())
	assert.True(t, cells[1].IsBlank())
	assert.Equal(t, "2024-03-05", cells[2].String())
}

func TestOpenTabUnknownTab(t *testing.T) {
	store := NewMockStore()
	_, err := store.OpenTab(context.Background(), "March")
	assert.Error(t, err)
}
