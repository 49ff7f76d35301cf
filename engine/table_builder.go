package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData for the visible rows
// ============================================================================
// One row per record, columns in schema order. Numeric columns are right
// aligned and totalled in the summary row.
// ============================================================================

// BuildTable renders the view as a table. An empty view keeps its headers.
func BuildTable(view RecordView, sch Schema) *TableData {
	columns := make([]Column, 0, len(sch.Columns))
	for _, key := range sch.Columns {
		col := Column{Key: key, Label: key, Type: "text", Align: "left"}
		if sch.Types[key] == Numeric {
			col.Type = "number"
			col.Align = "right"
		}
		columns = append(columns, col)
	}

	n := 0
	if view != nil {
		n = view.Len()
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := make([]string, 0, len(sch.Columns))
		for _, key := range sch.Columns {
			row = append(row, view.Value(i, key).String())
		}
		rows = append(rows, row)
	}

	table := &TableData{
		Columns: columns,
		Rows:    rows,
	}

	numeric := sch.Numeric()
	if n > 0 && len(numeric) > 0 {
		totals := make(map[string]string, len(numeric))
		for _, key := range numeric {
			totals[key] = FormatNumber(RoundTo2(SumMeasure(view, key)))
		}
		table.Summary = &Summary{
			Label:  fmt.Sprintf("Total (%d records)", n),
			Values: totals,
		}
	}
	return table
}
