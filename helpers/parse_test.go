package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/drilldash/engine"
)

// ============================================================================
// DISPATCH TESTS
// ============================================================================

func TestExtension(t *testing.T) {
	assert.Equal(t, "csv", Extension("sales.csv"))
	assert.Equal(t, "xlsx", Extension("Q1.Report.XLSX"))
	assert.Equal(t, "", Extension("trailing."))
	assert.Equal(t, "readme", Extension("README"))
}

func TestSupported(t *testing.T) {
	for _, name := range []string{"a.csv", "a.CSV", "a.xlsx", "a.xls"} {
		assert.True(t, Supported(name), name)
	}
	for _, name := range []string{"a.json", "a.txt", "a.csv.bak", "noext"} {
		assert.False(t, Supported(name), name)
	}
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("data.json", []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestParseDispatchCSV(t *testing.T) {
	table, err := Parse("DATA.CSV", []byte("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Columns)
	assert.Len(t, table.Records, 1)
}

func TestParseXLSRejected(t *testing.T) {
	// Not a zip container: the workbook decoder refuses it
	_, err := Parse("legacy.xls", []byte("\x00\x01legacy binary workbook"))
	assert.Error(t, err)
}

// ============================================================================
// HEADER TESTS
// ============================================================================

func TestCleanHeaders(t *testing.T) {
	got := cleanHeaders([]string{"name", "", "name", "  ", "name", "name_1"})
	assert.Equal(t, []string{"name", "__EMPTY", "name_1", "__EMPTY_1", "name_2", "name_1_1"}, got)
}

func TestNewRecordPadsNull(t *testing.T) {
	rec := newRecord([]string{"a", "b"}, func(i int) (engine.Value, bool) {
		if i == 0 {
			return engine.Text("x"), true
		}
		return engine.Value{}, false
	})
	assert.Equal(t, engine.Record{"a": engine.Text("x"), "b": engine.Null()}, rec)
}
