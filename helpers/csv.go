package helpers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spektr-org/drilldash/engine"
	"github.com/spektr-org/drilldash/internal/logging"
)

// ============================================================================
// CSV HELPER — Parses CSV data into an engine.Table
// ============================================================================
// Header row names the columns; empty lines are skipped; every cell stays Text
// so that type inference sees exactly what the user exported. Short rows are
// padded with Null, extra fields are dropped.
// ============================================================================

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV parses CSV bytes with a header row.
// Empty input yields an empty table.
func ParseCSV(data []byte) (*engine.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Read header
	rawHeaders, err := reader.Read()
	if err == io.EOF {
		return &engine.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	headers := cleanHeaders(rawHeaders)

	// Read rows
	table := &engine.Table{Columns: headers}
	extra := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(row) > len(headers) {
			extra++
		}

		table.Records = append(table.Records, newRecord(headers, func(i int) (engine.Value, bool) {
			if i >= len(row) {
				return engine.Value{}, false
			}
			return engine.Text(row[i]), true
		}))
	}

	if extra > 0 {
		logging.Logger().Debug("csv: rows with more fields than headers", "rows", extra)
	}
	logging.Logger().Info("csv parsed", "rows", len(table.Records), "columns", len(headers))
	return table, nil
}
