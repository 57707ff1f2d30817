package xlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
)

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeFirstWorksheet(t *testing.T) {
	data := workbookBytes(t, [][]any{
		{"Business Unit", "Next Appt Start Date", "Jobs Subtotal"},
		{"arlington", "2024-03-10", 100.5},
		{"dallas", "2024-03-11", "$1,234.50"},
	})

	table, err := NewDecoder().Decode(data)
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Business Unit", table.Header().Get(0).String())
	assert.Equal(t, "arlington", table.Rows[1].Get(0).String())
	assert.Equal(t, "$1,234.50", table.Rows[2].Get(2).String())
}

func TestDecodeEmptyWorkbook(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := NewDecoder().Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestDecodeGarbageBytes(t *testing.T) {
	_, err := NewDecoder().Decode([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestDecodeCellsAreText(t *testing.T) {
	data := workbookBytes(t, [][]any{
		{"Subtotal"},
		{42.5},
	})

	table, err := NewDecoder().Decode(data)
	require.NoError(t, err)

	// excelize surfaces values as displayed strings; coercion is the
	// normalizers' job.
	cell := table.Rows[1].Get(0)
	assert.Equal(t, model.CellText, cell.Kind)
	assert.Equal(t, "42.5", cell.Text)
}
