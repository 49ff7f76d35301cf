package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/spektr-org/drilldash/dashboard"
	"github.com/spektr-org/drilldash/engine"
	"github.com/spektr-org/drilldash/helpers"
	"github.com/spektr-org/drilldash/internal/logging"
	"github.com/spektr-org/drilldash/render"
	"github.com/spektr-org/drilldash/schema"
)

// ============================================================================
// DRILLDASH CLI — Drop a file, get a dashboard
// ============================================================================

const version = "0.3.0"

// usageHeader assumes a sales file with region (text) and amount (number) columns.
const usageHeader = `Drilldash — drop a file, get a dashboard

Usage:
  drilldash --file sales.csv --format text
  drilldash --file sales.xlsx --filter region=west --format csv --out west.csv
  drilldash --file sales.csv --select region-amount-pie:0 --png-dir charts/
  drilldash --file sales.csv --describe --format pretty

Flags:
`

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	var filters, selects multiFlag
	filePath := flag.String("file", "", "Path to CSV or Excel data file (required)")
	flag.Var(&filters, "filter", "Filter as column=value (repeatable)")
	flag.Var(&selects, "select", "Click a bar or pie point as chart-key:index (repeatable)")
	describe := flag.Bool("describe", false, "Print the column profile and exit")
	format := flag.String("format", "json", "Output format: json, pretty, text, csv")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	pngDir := flag.String("png-dir", "", "Render every chart as PNG into this directory")
	formatted := flag.Bool("formatted-numbers", false, "Treat values like \"$1,234.56\" as numeric")
	verbose := flag.Bool("verbose", false, "Debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageHeader)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  %s    Library log level: 0=error 1=warn 2=info 3=debug

Formats:
  json      Full dashboard snapshot (default)
  pretty    Pretty-printed JSON
  text      Status line and chart titles
  csv       Visible rows as CSV (ready for Sheets/Excel)
`, logging.EnvVar)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("drilldash %s\n", version)
		os.Exit(0)
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		flag.Usage()
		os.Exit(1)
	}
	if !helpers.Supported(*filePath) {
		fatalf("Unsupported file type %q (want .csv, .xlsx or .xls)", helpers.Extension(*filePath))
	}
	if *verbose {
		logging.SetLogLevel(slog.LevelDebug)
	}

	// ── Output writer ─────────────────────────────────────────────────────
	var writer io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	// ── Ingest ────────────────────────────────────────────────────────────
	var opts []dashboard.Option
	if *formatted {
		opts = append(opts, dashboard.WithEngineOptions(engine.WithFormattedNumbers()))
	}
	dash := dashboard.New(opts...)

	dir, name := filepath.Split(*filePath)
	if dir == "" {
		dir = "."
	}
	if err := dash.IngestFS(context.Background(), os.DirFS(dir), name); err != nil {
		fatalf("Failed to load file: %v", err)
	}
	ds := dash.Dataset()
	log.Printf("📊 Loaded %s: %d rows, %d numeric / %d categorical columns",
		ds.Name, ds.Len(), len(ds.Schema.Numeric()), len(ds.Schema.Categorical()))

	// ── Describe mode ─────────────────────────────────────────────────────
	if *describe {
		writeJSON(writer, schema.Describe(ds.Name, ds.Schema, ds.View()), *format)
		if *outFile != "" {
			log.Printf("📄 Profile written to %s", *outFile)
		}
		return
	}

	// ── Filters ───────────────────────────────────────────────────────────
	for _, raw := range filters {
		col, val, ok := strings.Cut(raw, "=")
		if !ok || col == "" {
			fatalf("Bad --filter %q (want column=value)", raw)
		}
		dash.FilterBy(col, filterValue(ds.Schema, col, val))
		log.Printf("🔎 Filter %s = %s", col, val)
	}
	for _, raw := range selects {
		i := strings.LastIndex(raw, ":")
		if i <= 0 {
			fatalf("Bad --select %q (want chart-key:index)", raw)
		}
		point, err := strconv.Atoi(raw[i+1:])
		if err != nil {
			fatalf("Bad --select index in %q: %v", raw, err)
		}
		if err := dash.SelectSlice(raw[:i], point); err != nil {
			fatalf("Select failed: %v", err)
		}
		log.Printf("🖱️ Selected %s", raw)
	}

	snap := dash.Snapshot()

	// ── Charts ────────────────────────────────────────────────────────────
	if *pngDir != "" {
		writePNGs(*pngDir, snap.Charts)
	}

	// ── Render output ─────────────────────────────────────────────────────
	switch *format {
	case "csv":
		writeCSV(writer, snap.Table)
		if *outFile != "" {
			log.Printf("📄 CSV written to %s", *outFile)
		}
	case "text":
		lines := []string{snap.Summary}
		if snap.Charts.Empty() {
			lines = append(lines, snap.Charts.Placeholder)
		}
		for _, c := range snap.Charts.Charts {
			lines = append(lines, fmt.Sprintf("  [%s] %s (%d points)", c.Key, c.Title, len(c.Points)))
		}
		fmt.Fprintln(writer, strings.Join(lines, "\n"))
	default:
		writeJSON(writer, snap, *format)
	}
}

// filterValue types a command-line filter value against the column: numeric
// columns compare as numbers, everything else as text. An empty value on a
// numeric column matches missing cells.
func filterValue(sch engine.Schema, column, raw string) engine.Value {
	if sch.Types[column] != engine.Numeric {
		return engine.Text(raw)
	}
	if raw == "" {
		return engine.Null()
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		fatalf("Filter value %q for numeric column %q is not a number", raw, column)
	}
	return engine.Number(f)
}

// ============================================================================
// PNG OUTPUT
// ============================================================================

func writePNGs(dir string, set engine.ChartSet) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fatalf("Failed to create chart directory: %v", err)
	}
	written := 0
	for _, spec := range set.Charts {
		path := filepath.Join(dir, render.FileName(spec))
		f, err := os.Create(path)
		if err != nil {
			fatalf("Failed to create %s: %v", path, err)
		}
		err = render.PNG(f, spec)
		f.Close()
		if err != nil {
			log.Printf("⚠️ Skipped %s: %v", spec.Key, err)
			os.Remove(path)
			continue
		}
		written++
	}
	log.Printf("🖼️ %d charts written to %s", written, dir)
}

// ============================================================================
// CSV OUTPUT
// ============================================================================

func writeCSV(w io.Writer, table *engine.TableData) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if table == nil || len(table.Columns) == 0 {
		cw.Write([]string{"Result", "No data"})
		return
	}

	headers := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		headers = append(headers, c.Label)
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}

	if table.Summary != nil {
		row := make([]string, 0, len(table.Columns))
		for i, c := range table.Columns {
			switch {
			case table.Summary.Values[c.Key] != "":
				row = append(row, table.Summary.Values[c.Key])
			case i == 0:
				row = append(row, table.Summary.Label)
			default:
				row = append(row, "")
			}
		}
		cw.Write(row)
	}
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v interface{}, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

// ============================================================================
// HELPERS
// ============================================================================

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
