package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// INFERENCE TESTS
// ============================================================================

func TestInferNumericWithBlanks(t *testing.T) {
	records := []Record{
		row("amount", "10", "region", "west"),
		row("amount", "", "region", "east"),
		row("amount", " 3.5 ", "region", "west"),
		row("amount", nil, "region", "north"),
	}

	types := Infer(records)
	assert.Equal(t, Types{"amount": Numeric, "region": Categorical}, types)
}

func TestInferOneBadCellFlipsColumn(t *testing.T) {
	records := make([]Record, 0, 50)
	for i := 0; i < 49; i++ {
		records = append(records, row("amount", "10"))
	}
	records = append(records, row("amount", "ten"))

	assert.Equal(t, Categorical, Infer(records)["amount"])
}

func TestInferEmpty(t *testing.T) {
	types := Infer(nil)
	require.NotNil(t, types)
	assert.Empty(t, types)
}

func TestInferKeysFromFirstRecord(t *testing.T) {
	records := []Record{
		row("a", "1"),
		row("a", "2", "b", "x"),
	}
	types := Infer(records)
	assert.Equal(t, Types{"a": Numeric}, types)
}

func TestInferMissingKeyIsNull(t *testing.T) {
	records := []Record{
		row("a", "1", "b", "2"),
		row("a", "3"),
	}
	assert.Equal(t, Numeric, Infer(records)["b"])
}

func TestInferNumberValues(t *testing.T) {
	records := []Record{row("n", 1), row("n", 2.5)}
	assert.Equal(t, Numeric, Infer(records)["n"])
}

func TestInferFormattedNumbers(t *testing.T) {
	records := []Record{
		row("amount", "$1,234.56", "pct", "12 %", "region", "west"),
		row("amount", "$99", "pct", "7%", "region", "east"),
	}

	strict := Infer(records)
	assert.Equal(t, Categorical, strict["amount"])
	assert.Equal(t, Categorical, strict["pct"])

	loose := Infer(records, WithFormattedNumbers())
	assert.Equal(t, Numeric, loose["amount"])
	assert.Equal(t, Numeric, loose["pct"])
	assert.Equal(t, Categorical, loose["region"])
}

func TestInferSchemaOrder(t *testing.T) {
	table := Table{
		Columns: []string{"region", "amount", "units"},
		Records: []Record{row("region", "west", "amount", "1", "units", "2")},
	}
	sch := InferSchema(table)
	assert.Equal(t, []string{"region", "amount", "units"}, sch.Columns)
	assert.Equal(t, []string{"amount", "units"}, sch.Numeric())
	assert.Equal(t, []string{"region"}, sch.Categorical())
}

// ============================================================================
// COERCION TESTS
// ============================================================================

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   Value
		want float64
		ok   bool
	}{
		{Null(), 0, true},
		{Number(4), 4, true},
		{Number(math.NaN()), 0, false},
		{Text(""), 0, true},
		{Text("   "), 0, true},
		{Text("42"), 42, true},
		{Text(" 42\n"), 42, true},
		{Text("-1.5"), -1.5, true},
		{Text("+7"), 7, true},
		{Text(".5"), 0.5, true},
		{Text("5."), 5, true},
		{Text("1e3"), 1000, true},
		{Text("0x1F"), 31, true},
		{Text("0o17"), 15, true},
		{Text("0b101"), 5, true},
		{Text("abc"), 0, false},
		{Text("1,234"), 0, false},
		{Text("$5"), 0, false},
		{Text("12abc"), 0, false},
		{Text("-"), 0, false},
		{Text("."), 0, false},
		{Text("NaN"), 0, false},
		{Text("inf"), 0, false},
	}

	for _, tt := range tests {
		got, ok := Coerce(tt.in)
		assert.Equal(t, tt.ok, ok, "Coerce(%#v)", tt.in.String())
		if tt.ok {
			assert.Equal(t, tt.want, got, "Coerce(%#v)", tt.in.String())
		}
	}
}

func TestCoerceInfinity(t *testing.T) {
	f, ok := Coerce(Text("Infinity"))
	require.True(t, ok)
	assert.True(t, math.IsInf(f, 1))

	f, ok = Coerce(Text("-Infinity"))
	require.True(t, ok)
	assert.True(t, math.IsInf(f, -1))
}
