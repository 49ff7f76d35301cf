package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// ============================================================================
// VALUE — One raw cell: null, text, or number
// ============================================================================
// Parsers hand the engine loosely typed cells. Value pins them down to the three
// shapes a dashboard cares about so equality and JSON stay predictable.
// ============================================================================

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "null"
	}
}

// Value is a single cell. The zero Value is Null.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Null returns the absent/empty value.
func Null() Value { return Value{} }

// Text wraps a string cell.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// ValueOf converts an arbitrary Go value into a Value.
// nil → Null, strings → Text, numeric kinds → Number, everything else is
// stringified.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return Text(x)
	case float64:
		return Number(x)
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, json.Number:
		if f, err := cast.ToFloat64E(x); err == nil {
			return Number(f)
		}
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return Text(fmt.Sprint(v))
	}
	return Text(s)
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsText() bool   { return v.kind == KindText }
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// TextValue returns the string payload and whether the value is Text.
func (v Value) TextValue() (string, bool) {
	return v.text, v.kind == KindText
}

// Float returns the numeric payload and whether the value is a Number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Equal reports exact equality: kinds must match, numbers compare numerically,
// text compares byte for byte, and Null equals Null.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	default:
		return true
	}
}

// String renders the value for tables and chart labels. Null renders empty.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return FormatNumber(v.num)
	default:
		return ""
	}
}

// FormatNumber renders a float in its shortest plain form ("1234.56", "-3", "NaN").
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON encodes Null as null, Text as a string and Number as a number.
// Non-finite numbers have no JSON form and encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a string, or a number.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = Null()
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("value must be null, string, or number: %w", err)
		}
		*v = Number(f)
	}
	return nil
}
