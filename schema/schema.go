package schema

import (
	"github.com/spektr-org/drilldash/engine"
)

// ============================================================================
// SCHEMA PROFILE — Describes the shape of a loaded dataset
// ============================================================================
// engine.Schema is the minimal contract (ordered columns + types). Config adds
// what a human wants to see before drilling in: display names, null counts,
// cardinality, samples, and numeric ranges.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string       `json:"name"`
	RowCount    int          `json:"rowCount"`
	Columns     []ColumnMeta `json:"columns"`
	DescribedAt string       `json:"describedAt,omitempty"`
}

// ColumnMeta describes one column.
type ColumnMeta struct {
	Key             string            `json:"key"`
	DisplayName     string            `json:"displayName"`
	Type            engine.ColumnType `json:"type"`
	Nulls           int               `json:"nulls"`
	Distinct        int               `json:"distinct"`
	CardinalityHint string            `json:"cardinalityHint"` // "low", "medium", "high"
	SampleValues    []string          `json:"sampleValues"`
	Stats           *engine.Stats     `json:"stats,omitempty"` // numeric columns only
}

// Keys returns all column keys in schema order.
func (c Config) Keys() []string {
	keys := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		keys[i] = col.Key
	}
	return keys
}

// NumericKeys returns numeric column keys.
func (c Config) NumericKeys() []string { return c.keysOf(engine.Numeric) }

// CategoricalKeys returns categorical column keys.
func (c Config) CategoricalKeys() []string { return c.keysOf(engine.Categorical) }

// Column returns the metadata for key.
func (c Config) Column(key string) (ColumnMeta, bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnMeta{}, false
}

func (c Config) keysOf(t engine.ColumnType) []string {
	var keys []string
	for _, col := range c.Columns {
		if col.Type == t {
			keys = append(keys, col.Key)
		}
	}
	return keys
}
