package engine

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ============================================================================
// TYPE INFERENCE — Numeric vs Categorical per column
// ============================================================================
// A column is Numeric iff every value is null, empty, or coerces to a number.
// One disqualifying cell anywhere flips the whole column to Categorical.
// Columns are taken from the first record; later records share its key set.
// ============================================================================

// Infer classifies every column of records. Empty input yields an empty map.
func Infer(records []Record, opts ...Option) Types {
	cfg := applyOptions(opts)
	types := make(Types)
	if len(records) == 0 {
		return types
	}

	for key := range records[0] {
		numeric := true
		for _, rec := range records {
			if !qualifiesNumeric(rec[key], cfg.FormattedNumbers) {
				numeric = false
				break
			}
		}
		if numeric {
			types[key] = Numeric
		} else {
			types[key] = Categorical
		}
	}
	return types
}

// InferSchema infers types for a parsed table and orders them by its header.
func InferSchema(table Table, opts ...Option) Schema {
	return NewSchema(table.Columns, Infer(table.Records, opts...))
}

// qualifiesNumeric reports whether v keeps its column numeric.
func qualifiesNumeric(v Value, formatted bool) bool {
	if v.IsNull() {
		return true
	}
	if s, ok := v.TextValue(); ok {
		if s == "" {
			return true
		}
		if _, ok := Coerce(v); ok {
			return true
		}
		return formatted && looksFormatted(s)
	}
	_, ok := Coerce(v)
	return ok
}

// ============================================================================
// COERCION — permissive text → number
// ============================================================================

var (
	decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	radixLiteral   = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// Coerce converts a value to a number the way a spreadsheet user would expect:
// surrounding whitespace is ignored, blank text is 0, Infinity and 0x/0o/0b
// literals are accepted. Null coerces to 0. It reports false for anything else,
// including NaN numbers.
func Coerce(v Value) (float64, bool) {
	switch v.Kind() {
	case KindNull:
		return 0, true
	case KindNumber:
		f, _ := v.Float()
		return f, !math.IsNaN(f)
	}

	s, _ := v.TextValue()
	s = strings.TrimFunc(s, isBlank)
	switch s {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if radixLiteral.MatchString(s) {
		base := 16
		switch s[1] {
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		n, ok := new(big.Int).SetString(s[2:], base)
		if !ok {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	}

	if !decimalLiteral.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// looksFormatted accepts text such as "$1,234.56", "12 %" or "€ (300)": every
// character outside [0-9.-] is formatting noise and the remainder parses as a
// float.
func looksFormatted(s string) bool {
	var kept strings.Builder
	digits := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
			kept.WriteRune(r)
		case r == '.' || r == '-':
			kept.WriteRune(r)
		case isBlank(r), r == ',', r == '%', r == '\'', r == '(', r == ')', r == '+',
			unicode.Is(unicode.Sc, r):
		default:
			return false
		}
	}
	if !digits {
		return false
	}
	_, err := strconv.ParseFloat(kept.String(), 64)
	return err == nil
}
