package engine

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spektr-org/drilldash/internal/logging"
)

// ============================================================================
// NORMALIZER — Clean numeric columns, leave categorical ones alone
// ============================================================================
// Spreadsheet exports carry currency symbols, thousands separators and stray
// whitespace. Numeric columns are stripped down to [0-9.-] and parsed; a cell
// that still fails becomes Null rather than failing the whole ingestion.
// ============================================================================

// Normalize re-infers column types from records and rewrites numeric columns.
// Input records are not modified; order and column set are preserved.
func Normalize(records []Record, opts ...Option) []Record {
	return NormalizeWith(records, Infer(records, opts...))
}

// NormalizeWith rewrites records using already-known column types.
// Columns missing from types are copied unchanged.
func NormalizeWith(records []Record, types Types) []Record {
	out := make([]Record, len(records))
	nulled := 0

	for i, rec := range records {
		clean := make(Record, len(rec))
		for key, val := range rec {
			if types[key] != Numeric {
				clean[key] = val
				continue
			}
			clean[key] = normalizeNumeric(val)
			if clean[key].IsNull() && !val.IsNull() {
				nulled++
			}
		}
		out[i] = clean
	}

	if nulled > 0 {
		logging.Logger().Debug("normalize: unparseable numeric cells set to null",
			"cells", nulled, "rows", len(records))
	}
	return out
}

// normalizeNumeric cleans one cell of a numeric column.
func normalizeNumeric(v Value) Value {
	switch v.Kind() {
	case KindNumber:
		return v
	case KindText:
		s, _ := v.TextValue()
		if f, ok := parseLeadingFloat(stripNonNumeric(s)); ok {
			return Number(f)
		}
	}
	return Null()
}

// stripNonNumeric drops every character that is not a digit, '-' or '.'.
func stripNonNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}
		return -1
	}, s)
}

// parseLeadingFloat parses the longest leading "-?digits.digits" prefix, so
// "12.5.1" reads as 12.5 and "3-4" as 3. At least one digit is required.
func parseLeadingFloat(s string) (float64, bool) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
