package engine

import "sort"

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// Filtering and chart derivation read rows through this interface so that a
// filtered subset never copies the dataset.
//
// Implementations:
//   SliceView — wraps []Record (parsed tables, ad-hoc data)
//   SubView   — filtered subset (indices into parent, zero-copy)
// ============================================================================

// RecordView provides indexed access to a dataset.
type RecordView interface {
	Len() int
	Value(index int, key string) Value
	Record(index int) Record
	Columns() []string
}

// ============================================================================
// SLICE VIEW — wraps []Record
// ============================================================================

// SliceView wraps a []Record slice as a RecordView.
type SliceView struct {
	records []Record
	columns []string
}

// NewSliceView creates a RecordView from records. Columns are the union of
// record keys, sorted.
func NewSliceView(records []Record) RecordView {
	v := &SliceView{records: records}
	v.cacheKeys()
	return v
}

// NewTableView creates a RecordView that keeps the table's header order.
func NewTableView(table Table) RecordView {
	return &SliceView{records: table.Records, columns: table.Columns}
}

func (v *SliceView) cacheKeys() {
	seen := make(map[string]bool)
	for _, r := range v.records {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				v.columns = append(v.columns, k)
			}
		}
	}
	sort.Strings(v.columns)
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Value(i int, key string) Value {
	if i < 0 || i >= len(v.records) {
		return Null()
	}
	return v.records[i][key]
}

func (v *SliceView) Record(i int) Record {
	if i < 0 || i >= len(v.records) {
		return nil
	}
	return v.records[i]
}

func (v *SliceView) Columns() []string { return v.columns }

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Value(i int, key string) Value {
	if i < 0 || i >= len(v.indices) {
		return Null()
	}
	return v.parent.Value(v.indices[i], key)
}

func (v *SubView) Record(i int) Record {
	if i < 0 || i >= len(v.indices) {
		return nil
	}
	return v.parent.Record(v.indices[i])
}

func (v *SubView) Columns() []string { return v.parent.Columns() }

// Records copies the view's rows out into a slice (the records themselves are
// shared, not cloned).
func Records(view RecordView) []Record {
	if sv, ok := view.(*SliceView); ok {
		return sv.records
	}
	out := make([]Record, view.Len())
	for i := range out {
		out[i] = view.Record(i)
	}
	return out
}
