package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/drilldash/engine"
)

// ============================================================================
// CSV TESTS
// ============================================================================

var salesCSV = []byte(`Region,Product,Amount,Units
West,Widget,"$1,234.56",10
East,Gadget,250,
West,Gadget,n/a,3

North,Widget,75.5,7
`)

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV(salesCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Product", "Amount", "Units"}, table.Columns)
	require.Len(t, table.Records, 4) // blank line skipped

	first := table.Records[0]
	assert.Equal(t, engine.Text("West"), first["Region"])
	assert.Equal(t, engine.Text("$1,234.56"), first["Amount"])
	assert.Equal(t, engine.Text("10"), first["Units"])

	// Present but empty stays empty text
	assert.Equal(t, engine.Text(""), table.Records[1]["Units"])
}

func TestParseCSVRaggedRows(t *testing.T) {
	table, err := ParseCSV([]byte("a,b,c\n1,2\n1,2,3,4\n"))
	require.NoError(t, err)
	require.Len(t, table.Records, 2)

	assert.True(t, table.Records[0]["c"].IsNull())
	assert.Len(t, table.Records[1], 3) // extra field dropped
	assert.Equal(t, engine.Text("3"), table.Records[1]["c"])
}

func TestParseCSVBOMAndHeaders(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,,id\n1,2,3\n")...)
	table, err := ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "__EMPTY", "id_1"}, table.Columns)
	assert.Equal(t, engine.Text("3"), table.Records[0]["id_1"])
}

func TestParseCSVEmpty(t *testing.T) {
	table, err := ParseCSV(nil)
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Records)

	table, err = ParseCSV([]byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Columns)
	assert.Empty(t, table.Records)
}

func TestParseCSVInferNormalize(t *testing.T) {
	table, err := ParseCSV(salesCSV)
	require.NoError(t, err)

	sch := engine.InferSchema(*table, engine.WithFormattedNumbers())
	assert.Equal(t, []string{"Units"}, sch.Numeric())
	assert.Equal(t, []string{"Region", "Product", "Amount"}, sch.Categorical()) // "n/a" disqualifies

	records := engine.Normalize(table.Records)
	assert.Equal(t, engine.Number(10), records[0]["Units"])
	assert.True(t, records[1]["Units"].IsNull())
}
