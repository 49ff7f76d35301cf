package schema

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/spektr-org/drilldash/engine"
)

const maxSamples = 10

// Describe profiles every column of sch over the rows in view.
func Describe(name string, sch engine.Schema, view engine.RecordView) *Config {
	if name == "" {
		name = "Untitled Dataset"
	}
	cfg := &Config{
		Name:        name,
		Columns:     make([]ColumnMeta, 0, len(sch.Columns)),
		DescribedAt: time.Now().Format(time.RFC3339),
	}
	if view != nil {
		cfg.RowCount = view.Len()
	}

	for _, key := range sch.Columns {
		cfg.Columns = append(cfg.Columns, describeColumn(key, sch.Types[key], view))
	}
	return cfg
}

// describeColumn inspects all values in a column.
func describeColumn(key string, typ engine.ColumnType, view engine.RecordView) ColumnMeta {
	col := ColumnMeta{
		Key:         key,
		DisplayName: toDisplayName(key),
		Type:        typ,
	}

	unique := make(map[string]bool)
	n := 0
	if view != nil {
		n = view.Len()
	}
	for i := 0; i < n; i++ {
		v := view.Value(i, key)
		if s, ok := v.TextValue(); v.IsNull() || (ok && strings.TrimSpace(s) == "") {
			col.Nulls++
			continue
		}
		unique[v.String()] = true
	}
	col.Distinct = len(unique)
	col.SampleValues = collectSamples(unique, maxSamples)

	switch {
	case col.Distinct <= 10:
		col.CardinalityHint = "low"
	case col.Distinct <= 100:
		col.CardinalityHint = "medium"
	default:
		col.CardinalityHint = "high"
	}

	if typ == engine.Numeric && view != nil {
		st := engine.MeasureStats(view, key)
		col.Stats = &st
	}
	return col
}

// toDisplayName cleans a header for human display.
// "story_points" → "Story Points", "unitPrice" → "Unit Price"
func toDisplayName(s string) string {
	// If already has spaces, just trim
	if strings.Contains(strings.TrimSpace(s), " ") {
		return strings.TrimSpace(s)
	}

	words := strings.Fields(strcase.ToDelimited(s, ' '))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, max int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > max {
		samples = samples[:max]
	}
	return samples
}
