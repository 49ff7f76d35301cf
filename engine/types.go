package engine

import "sort"

// ============================================================================
// DRILLDASH ENGINE TYPES — Tabular records, schema, render-ready output
// ============================================================================
// Record is a loosely shaped row keyed by column name. Schema pins the shape
// down once per dataset: ordered columns plus a Numeric/Categorical verdict.
//
// Dependency: engine imports only small value helpers (cast, decimal).
// ============================================================================

// ============================================================================
// RECORD / TABLE
// ============================================================================

// Record is a single data row keyed by column name.
//
// Parsed:     Record{"region": Text("west"), "amount": Text("$1,234.56")}
// Normalized: Record{"region": Text("west"), "amount": Number(1234.56)}
type Record map[string]Value

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the record's column names, sorted.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Table is parsed tabular output: header order plus rows.
// Every record carries exactly the keys in Columns.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// ============================================================================
// COLUMN TYPES / SCHEMA
// ============================================================================

// ColumnType classifies a column. It drives both normalization and chart selection.
type ColumnType string

const (
	Numeric     ColumnType = "numeric"
	Categorical ColumnType = "string"
)

// Types maps column name to its inferred type.
type Types map[string]ColumnType

// Schema is the dataset's shape: ordered columns with one type each.
// Computed once at ingestion, never re-inferred while the dataset lives.
type Schema struct {
	Columns []string `json:"columns"`
	Types   Types    `json:"types"`
}

// NewSchema orders types by the given column list. Columns without a type are
// dropped; typed columns missing from the list are appended in sorted order.
func NewSchema(columns []string, types Types) Schema {
	sch := Schema{Types: make(Types, len(types))}
	seen := make(map[string]bool, len(types))
	for _, col := range columns {
		t, ok := types[col]
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		sch.Columns = append(sch.Columns, col)
		sch.Types[col] = t
	}

	var rest []string
	for col := range types {
		if !seen[col] {
			rest = append(rest, col)
		}
	}
	sort.Strings(rest)
	for _, col := range rest {
		sch.Columns = append(sch.Columns, col)
		sch.Types[col] = types[col]
	}
	return sch
}

// TypeOf returns the column's type and whether the column exists.
func (s Schema) TypeOf(column string) (ColumnType, bool) {
	t, ok := s.Types[column]
	return t, ok
}

// Numeric returns numeric columns in schema order.
func (s Schema) Numeric() []string { return s.columnsOf(Numeric) }

// Categorical returns categorical columns in schema order.
func (s Schema) Categorical() []string { return s.columnsOf(Categorical) }

// IsEmpty reports whether the schema has no columns.
func (s Schema) IsEmpty() bool { return len(s.Columns) == 0 }

func (s Schema) columnsOf(t ColumnType) []string {
	var out []string
	for _, col := range s.Columns {
		if s.Types[col] == t {
			out = append(out, col)
		}
	}
	return out
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartKind names a chart renderer.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
	ChartArea ChartKind = "area"
	ChartPie  ChartKind = "pie"
)

// ChartSpec is one derived chart, ready for a renderer.
// Bar and pie charts double as filter inputs on their category column.
type ChartSpec struct {
	Key    string       `json:"key"`
	Kind   ChartKind    `json:"kind"`
	Title  string       `json:"title"`
	XKey   string       `json:"xKey"`
	YKey   string       `json:"yKey"`
	Points []ChartPoint `json:"points"`
	Colors []string     `json:"colors,omitempty"`

	// FilterColumn is the column a click on this chart filters by. Empty for
	// line and area charts.
	FilterColumn string `json:"filterColumn,omitempty"`
}

// Filterable reports whether clicking a point issues a filter.
func (c ChartSpec) Filterable() bool { return c.FilterColumn != "" }

// ChartPoint is one bar, one pie slice, or one (x, y) sample.
type ChartPoint struct {
	Label    string  `json:"label"`
	Category Value   `json:"category"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y"`
}

// ChartSet is the derived chart grid. When empty, renderers show Placeholder.
type ChartSet struct {
	Charts      []ChartSpec `json:"charts"`
	Placeholder string      `json:"placeholder,omitempty"`
}

// Empty reports whether no chart was derived.
func (s ChartSet) Empty() bool { return len(s.Charts) == 0 }

// Count returns the number of charts of the given kind.
func (s ChartSet) Count(kind ChartKind) int {
	n := 0
	for _, c := range s.Charts {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Find returns the chart with the given key.
func (s ChartSet) Find(key string) (ChartSpec, bool) {
	for _, c := range s.Charts {
		if c.Key == key {
			return c, true
		}
	}
	return ChartSpec{}, false
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
