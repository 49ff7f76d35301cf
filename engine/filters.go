package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================================
// FILTERS — Column equality constraints, applied via RecordView
// ============================================================================
// One required value per column. Constraints are AND-combined; there is no OR,
// range, or negation. Comparison is exact (Value.Equal): no case folding, no
// partial match, numbers compared numerically.
// ============================================================================

// Filters is an insertion-ordered set of column = value constraints.
// The zero value is an empty, usable filter set.
type Filters struct {
	keys   []string
	values map[string]Value
}

// NewFilters builds a filter set from pairs, in order.
func NewFilters(pairs ...FilterPair) Filters {
	var f Filters
	for _, p := range pairs {
		f.Set(p.Column, p.Value)
	}
	return f
}

// FilterPair is one column = value constraint.
type FilterPair struct {
	Column string `json:"column"`
	Value  Value  `json:"value"`
}

// Set adds or overwrites the constraint on column. An overwritten column keeps
// its original position.
func (f *Filters) Set(column string, value Value) {
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, exists := f.values[column]; !exists {
		f.keys = append(f.keys, column)
	}
	f.values[column] = value
}

// Remove drops the constraint on column. Removing an absent column is a no-op.
func (f *Filters) Remove(column string) {
	if _, exists := f.values[column]; !exists {
		return
	}
	delete(f.values, column)
	for i, k := range f.keys {
		if k == column {
			f.keys = append(f.keys[:i:i], f.keys[i+1:]...)
			break
		}
	}
}

// Get returns the constraint on column.
func (f Filters) Get(column string) (Value, bool) {
	v, ok := f.values[column]
	return v, ok
}

// HasFilter returns true if a constraint is set on column.
func (f Filters) HasFilter(column string) bool {
	_, ok := f.values[column]
	return ok
}

// Len returns the number of active constraints.
func (f Filters) Len() int { return len(f.keys) }

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool { return len(f.keys) == 0 }

// Keys returns constrained columns in insertion order.
func (f Filters) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Pairs returns the constraints in insertion order.
func (f Filters) Pairs() []FilterPair {
	out := make([]FilterPair, 0, len(f.keys))
	for _, k := range f.keys {
		out = append(out, FilterPair{Column: k, Value: f.values[k]})
	}
	return out
}

// Clone returns an independent copy.
func (f Filters) Clone() Filters {
	var out Filters
	for _, k := range f.keys {
		out.Set(k, f.values[k])
	}
	return out
}

// Label renders the filter chips as "region: west, amount: 10".
func (f Filters) Label() string {
	parts := make([]string, 0, len(f.keys))
	for _, k := range f.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f.values[k]))
	}
	return strings.Join(parts, ", ")
}

// Matches reports whether rec satisfies every constraint.
func (f Filters) Matches(rec Record) bool {
	for _, k := range f.keys {
		if !rec[k].Equal(f.values[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the filters as a JSON object in insertion order.
func (f Filters) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
func (f *Filters) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = Filters{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("filters must be a JSON object")
	}

	var out Filters
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("filters: unexpected key %v", tok)
		}
		var v Value
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("filters: value for %q: %w", key, err)
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

// ============================================================================
// APPLY
// ============================================================================

// ApplyFilters returns a view of records matching all filters.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	// Single pass — record passes if it matches ALL constraints
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for _, k := range filters.keys {
			if !view.Value(i, k).Equal(filters.values[k]) {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// FilterRecords returns the records matching all filters, in original order.
// Empty filters return records unchanged.
func FilterRecords(records []Record, filters Filters) []Record {
	if filters.IsEmpty() {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if filters.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}
