package helpers

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/drilldash/engine"
	"github.com/spektr-org/drilldash/internal/logging"
)

// ============================================================================
// XLSX HELPER — First worksheet into an engine.Table
// ============================================================================
// The first non-blank row is the header. Blank rows are skipped. Numeric cells
// become Number, booleans "true"/"false", everything else Text. Only the first
// sheet is read; other sheets are ignored.
// ============================================================================

// ParseXLSX decodes workbook bytes. Legacy binary .xls files are rejected by
// the decoder and surface as an error.
func ParseXLSX(data []byte) (*engine.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &engine.Table{}, nil
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}

	// Header is the first row with any content
	headerIdx := -1
	width := 0
	for i, row := range rows {
		if headerIdx < 0 && !blankRow(row) {
			headerIdx = i
		}
		if headerIdx >= 0 && len(row) > width {
			width = len(row)
		}
	}
	if headerIdx < 0 {
		return &engine.Table{}, nil
	}

	rawHeaders := make([]string, width)
	copy(rawHeaders, rows[headerIdx])
	headers := cleanHeaders(rawHeaders)

	table := &engine.Table{Columns: headers}
	for r := headerIdx + 1; r < len(rows); r++ {
		row := rows[r]
		if blankRow(row) {
			continue
		}
		rowNum := r + 1
		table.Records = append(table.Records, newRecord(headers, func(c int) (engine.Value, bool) {
			if c >= len(row) || row[c] == "" {
				return engine.Value{}, false
			}
			return cellValue(f, sheet, c+1, rowNum, row[c]), true
		}))
	}

	logging.Logger().Info("xlsx parsed",
		"sheet", sheet, "rows", len(table.Records), "columns", len(headers))
	return table, nil
}

// cellValue types a raw cell using the workbook's cell type.
func cellValue(f *excelize.File, sheet string, col, row int, raw string) engine.Value {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return engine.Text(raw)
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return engine.Text(raw)
	}

	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return engine.Number(n)
		}
	case excelize.CellTypeBool:
		return engine.ValueOf(raw == "1" || raw == "TRUE" || raw == "true")
	}
	return engine.Text(raw)
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
