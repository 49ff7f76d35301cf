package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spektr-org/drilldash/engine"
)

// ============================================================================
// INPUT BOUNDARY — file name → parsed engine.Table
// ============================================================================
// Dispatch is on the lowercase extension after the last dot:
//   csv        → delimited text with a header row
//   xlsx, xls  → first worksheet, header row
// Anything else is ErrUnsupportedFormat.
// ============================================================================

// ErrUnsupportedFormat is returned for file extensions with no parser.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extension returns the lowercase text after the last dot of name.
// A name without a dot is returned whole, lowercased.
func Extension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// Supported reports whether Parse can handle name.
func Supported(name string) bool {
	switch Extension(name) {
	case "csv", "xlsx", "xls":
		return true
	}
	return false
}

// Parse decodes file contents into a table, choosing the parser by name.
func Parse(name string, data []byte) (*engine.Table, error) {
	switch ext := Extension(name); ext {
	case "csv":
		return ParseCSV(data)
	case "xlsx", "xls":
		return ParseXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// cleanHeaders names blank headers "__EMPTY" and suffixes duplicates with
// "_1", "_2", ... so every column key is unique.
func cleanHeaders(raw []string) []string {
	out := make([]string, len(raw))
	taken := make(map[string]bool, len(raw))
	counts := make(map[string]int)

	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = "__EMPTY"
		}
		name := h
		for taken[name] {
			counts[h]++
			name = fmt.Sprintf("%s_%d", h, counts[h])
		}
		taken[name] = true
		out[i] = name
	}
	return out
}

// newRecord builds a record with every header present; cells past the end of
// the row are Null.
func newRecord(headers []string, cell func(i int) (engine.Value, bool)) engine.Record {
	rec := make(engine.Record, len(headers))
	for i, h := range headers {
		v, ok := cell(i)
		if !ok {
			v = engine.Null()
		}
		rec[h] = v
	}
	return rec
}
