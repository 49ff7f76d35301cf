package engine

import (
	"github.com/spektr-org/drilldash/internal/logging"
)

// ============================================================================
// EXECUTOR — filter → charts → table → summary
// ============================================================================
// Entry point: Execute(view, schema, filters, opts...)
//
// Pipeline:
//   1. Apply filters → SubView (zero-copy)
//   2. Derive the chart set from the visible rows
//   3. Build the table and the status line
//
// Stateless and idempotent: safe to re-run after every filter change.
// ============================================================================

// Result is the render-ready view of a dataset under a filter set.
type Result struct {
	Visible RecordView `json:"-"`
	Total   int        `json:"total"`
	Charts  ChartSet   `json:"charts"`
	Table   *TableData `json:"table"`
	Summary string     `json:"summary"`
}

// Execute filters view and derives everything a renderer needs.
// A nil view is treated as an empty dataset.
func Execute(view RecordView, sch Schema, filters Filters, opts ...Option) *Result {
	if view == nil {
		view = NewSliceView(nil)
	}

	visible := ApplyFilters(view, filters)

	logging.Logger().Debug("execute",
		"rows", view.Len(), "visible", visible.Len(), "filters", filters.Len())

	return &Result{
		Visible: visible,
		Total:   view.Len(),
		Charts:  DeriveCharts(visible, sch, opts...),
		Table:   BuildTable(visible, sch),
		Summary: BuildSummary(visible.Len(), view.Len(), sch, filters),
	}
}
