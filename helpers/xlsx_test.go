package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/drilldash/engine"
)

// workbook builds an in-memory xlsx with rows written from A1 on Sheet1.
func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// ============================================================================
// XLSX TESTS
// ============================================================================

func TestParseXLSX(t *testing.T) {
	data := workbook(t, [][]any{
		{"Region", "Amount", "Active", "Code"},
		{"West", 1234.56, true, "007"},
		{"East", 250, false, nil},
	})

	table, err := ParseXLSX(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Amount", "Active", "Code"}, table.Columns)
	require.Len(t, table.Records, 2)

	first := table.Records[0]
	assert.Equal(t, engine.Text("West"), first["Region"])
	assert.Equal(t, engine.Number(1234.56), first["Amount"])
	assert.Equal(t, engine.Text("true"), first["Active"])
	assert.Equal(t, engine.Text("007"), first["Code"])

	second := table.Records[1]
	assert.Equal(t, engine.Number(250), second["Amount"])
	assert.Equal(t, engine.Text("false"), second["Active"])
	assert.True(t, second["Code"].IsNull())
}

func TestParseXLSXSkipsBlankRows(t *testing.T) {
	data := workbook(t, [][]any{
		{nil, nil},
		{"name", "score"},
		{"a", 1},
		{nil, nil},
		{"b", 2},
	})

	table, err := ParseXLSX(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score"}, table.Columns)
	require.Len(t, table.Records, 2)
	assert.Equal(t, engine.Text("b"), table.Records[1]["name"])
}

func TestParseXLSXHeaderCleanup(t *testing.T) {
	data := workbook(t, [][]any{
		{"x", nil, "x"},
		{1, 2, 3},
	})

	table, err := ParseXLSX(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "__EMPTY", "x_1"}, table.Columns)
	assert.Equal(t, engine.Number(2), table.Records[0]["__EMPTY"])
}

func TestParseXLSXEmptySheet(t *testing.T) {
	table, err := ParseXLSX(workbook(t, nil))
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Records)
}

func TestParseXLSXMatchesCSV(t *testing.T) {
	fromCSV, err := Parse("s.csv", []byte("region,amount\nwest,10\neast,20\n"))
	require.NoError(t, err)
	fromXLSX, err := Parse("s.xlsx", workbook(t, [][]any{
		{"region", "amount"},
		{"west", 10},
		{"east", 20},
	}))
	require.NoError(t, err)

	assert.Equal(t, fromCSV.Columns, fromXLSX.Columns)
	assert.Equal(t,
		engine.Normalize(fromCSV.Records),
		engine.Normalize(fromXLSX.Records))
}

func TestParseXLSXCorrupt(t *testing.T) {
	_, err := ParseXLSX([]byte("not a workbook"))
	assert.Error(t, err)
}
