// Package drilldash turns an uploaded CSV or Excel file into an interactive
// dashboard: inferred column types, normalized numbers, a derived chart grid,
// and click-to-filter drill-down.
//
// Usage:
//
//	import "github.com/spektr-org/drilldash/dashboard"
//
//	dash := dashboard.New()
//	if err := dash.Ingest(ctx, "sales.csv", file); err != nil { ... }
//	dash.FilterBy("region", engine.Text("west"))
//	snap := dash.Snapshot() // visible rows, charts, table, summary
//
// The engine package is stateless: Infer, Normalize, ApplyFilters and
// DeriveCharts can be used directly on []engine.Record. Everything runs
// locally; no file leaves the process.
package drilldash
