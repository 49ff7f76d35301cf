package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/drilldash/engine"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func salesCharts(t *testing.T) engine.ChartSet {
	t.Helper()
	records := []engine.Record{
		{"region": engine.Text("west"), "month": engine.Number(1), "amount": engine.Number(10)},
		{"region": engine.Text("east"), "month": engine.Number(2), "amount": engine.Number(25)},
		{"region": engine.Text("north"), "month": engine.Number(3), "amount": engine.Number(15)},
	}
	sch := engine.NewSchema([]string{"region", "month", "amount"},
		engine.Types{"region": engine.Categorical, "month": engine.Numeric, "amount": engine.Numeric})
	set := engine.DeriveCharts(engine.NewSliceView(records), sch)
	require.False(t, set.Empty())
	return set
}

// ============================================================================
// PNG TESTS
// ============================================================================

func TestPNGEveryKind(t *testing.T) {
	set := salesCharts(t)
	for _, kind := range []engine.ChartKind{engine.ChartBar, engine.ChartLine, engine.ChartArea, engine.ChartPie} {
		require.Positive(t, set.Count(kind), kind)
	}

	for _, spec := range set.Charts {
		var buf bytes.Buffer
		require.NoError(t, PNG(&buf, spec, WithSize(400, 300)), spec.Key)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), spec.Key)
	}
}

func TestPNGSinglePointSeries(t *testing.T) {
	spec := engine.ChartSpec{
		Key:    "x-y-line",
		Kind:   engine.ChartLine,
		Title:  "y over x",
		Points: []engine.ChartPoint{{X: 1, Y: 5}},
		Colors: []string{"#82ca9d"},
	}
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, spec))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestPNGFlatBars(t *testing.T) {
	spec := engine.ChartSpec{
		Key:   "r-a-bar",
		Kind:  engine.ChartBar,
		Title: "a by r",
		Points: []engine.ChartPoint{
			{Label: "west", Y: 0},
			{Label: "east", Y: 0},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, spec))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestPNGNothingToDraw(t *testing.T) {
	var buf bytes.Buffer

	err := PNG(&buf, engine.ChartSpec{Key: "empty", Kind: engine.ChartBar})
	assert.True(t, errors.Is(err, ErrNothingToDraw))

	pie := engine.ChartSpec{Key: "p", Kind: engine.ChartPie, Points: []engine.ChartPoint{{Label: "a", Y: -1}}}
	assert.True(t, errors.Is(PNG(&buf, pie), ErrNothingToDraw))

	err = PNG(&buf, engine.ChartSpec{Key: "k", Kind: "radar", Points: []engine.ChartPoint{{Y: 1}}})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

// ============================================================================
// FILE NAME TESTS
// ============================================================================

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"amount by region":             "amount_by_region.png",
		"Pie Chart: amount by region":  "pie_chart_amount_by_region.png",
		"Area Chart: units over month": "area_chart_units_over_month.png",
		"Unit Price by Store #":        "unit_price_by_store.png",
	}
	for title, want := range tests {
		assert.Equal(t, want, FileName(engine.ChartSpec{Title: title}), title)
	}

	assert.Equal(t, "region_amount_bar.png", FileName(engine.ChartSpec{Key: "region-amount-bar"}))
	assert.Equal(t, "chart.png", FileName(engine.ChartSpec{Title: "!!!"}))
}
