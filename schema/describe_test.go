package schema

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/drilldash/engine"
)

// ============================================================================
// DESCRIBE TESTS
// ============================================================================

func salesView() (engine.Schema, engine.RecordView) {
	records := []engine.Record{
		{"region": engine.Text("west"), "unit_price": engine.Number(10)},
		{"region": engine.Text("east"), "unit_price": engine.Null()},
		{"region": engine.Text(" "), "unit_price": engine.Number(-2.5)},
		{"region": engine.Text("west"), "unit_price": engine.Number(4)},
	}
	sch := engine.NewSchema([]string{"region", "unit_price"},
		engine.Types{"region": engine.Categorical, "unit_price": engine.Numeric})
	return sch, engine.NewTableView(engine.Table{Columns: sch.Columns, Records: records})
}

func TestDescribe(t *testing.T) {
	sch, view := salesView()
	cfg := Describe("sales.csv", sch, view)

	assert.Equal(t, "sales.csv", cfg.Name)
	assert.Equal(t, 4, cfg.RowCount)
	assert.Equal(t, []string{"region", "unit_price"}, cfg.Keys())
	assert.Equal(t, []string{"unit_price"}, cfg.NumericKeys())
	assert.Equal(t, []string{"region"}, cfg.CategoricalKeys())

	region, ok := cfg.Column("region")
	require.True(t, ok)
	assert.Equal(t, "Region", region.DisplayName)
	assert.Equal(t, 1, region.Nulls) // blank text counts as empty
	assert.Equal(t, 2, region.Distinct)
	assert.Equal(t, "low", region.CardinalityHint)
	assert.Equal(t, []string{"east", "west"}, region.SampleValues)
	assert.Nil(t, region.Stats)

	price, ok := cfg.Column("unit_price")
	require.True(t, ok)
	assert.Equal(t, "Unit Price", price.DisplayName)
	assert.Equal(t, 1, price.Nulls)
	require.NotNil(t, price.Stats)
	assert.Equal(t, engine.Stats{Count: 3, Nulls: 1, Min: -2.5, Max: 10, Sum: 11.5}, *price.Stats)

	_, ok = cfg.Column("missing")
	assert.False(t, ok)
}

func TestDescribeDefaults(t *testing.T) {
	cfg := Describe("", engine.Schema{}, nil)
	assert.Equal(t, "Untitled Dataset", cfg.Name)
	assert.Equal(t, 0, cfg.RowCount)
	assert.Empty(t, cfg.Columns)
}

func TestDescribeCardinality(t *testing.T) {
	records := make([]engine.Record, 0, 150)
	for i := 0; i < 150; i++ {
		records = append(records, engine.Record{
			"id":   engine.Text(fmt.Sprintf("id-%03d", i)),
			"team": engine.Text(fmt.Sprintf("team-%02d", i%50)),
		})
	}
	sch := engine.NewSchema([]string{"id", "team"},
		engine.Types{"id": engine.Categorical, "team": engine.Categorical})
	cfg := Describe("people", sch, engine.NewSliceView(records))

	id, _ := cfg.Column("id")
	assert.Equal(t, "high", id.CardinalityHint)
	assert.Len(t, id.SampleValues, maxSamples)
	assert.Equal(t, "id-000", id.SampleValues[0])

	team, _ := cfg.Column("team")
	assert.Equal(t, "medium", team.CardinalityHint)
	assert.Equal(t, 50, team.Distinct)
}

func TestDescribeJSON(t *testing.T) {
	sch, view := salesView()
	b, err := json.Marshal(Describe("sales.csv", sch, view))
	require.NoError(t, err)

	var back Config
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, []string{"region", "unit_price"}, back.Keys())
	assert.Equal(t, engine.Numeric, back.Columns[1].Type)
}

func TestToDisplayName(t *testing.T) {
	tests := map[string]string{
		"story_points": "Story Points",
		"unitPrice":    "Unit Price",
		"amount":       "Amount",
		"Order Date":   "Order Date",
		"  padded  ":   "Padded",
	}
	for in, want := range tests {
		assert.Equal(t, want, toDisplayName(in), in)
	}
}
