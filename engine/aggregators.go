package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

// ============================================================================
// AGGREGATORS — Grouping and summing via RecordView
// ============================================================================
// Sums accumulate in decimal so that spreadsheet money columns add up the way
// the user sees them (0.1 + 0.2 == 0.3). Grouping produces SubViews.
// ============================================================================

// Group is one distinct category value with its aggregated measure.
type Group struct {
	Key   Value      `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // rows in this group (zero-copy)
}

// SumBy groups view by the distinct values of groupKey (first-seen order) and
// sums measure within each group. Null or non-numeric measure cells add 0.
func SumBy(view RecordView, groupKey, measure string) []Group {
	if view.Len() == 0 {
		return nil
	}

	grouped := make(map[Value][]int)
	order := make([]Value, 0)
	for i := 0; i < view.Len(); i++ {
		key := view.Value(i, groupKey)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		sub := newSubView(view, grouped[key])
		groups = append(groups, Group{
			Key:   key,
			Label: key.String(),
			Value: SumMeasure(sub, measure),
			Count: sub.Len(),
			View:  sub,
		})
	}
	return groups
}

// SumMeasure sums a numeric column over the view.
func SumMeasure(view RecordView, measure string) float64 {
	var acc accumulator
	for i := 0; i < view.Len(); i++ {
		if f, ok := view.Value(i, measure).Float(); ok {
			acc.add(f)
		}
	}
	return acc.value()
}

// Stats summarizes one numeric column.
type Stats struct {
	Count int     `json:"count"` // numeric cells
	Nulls int     `json:"nulls"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
}

// MeasureStats computes count/min/max/sum for a numeric column.
// Min and Max are 0 when the column has no numeric cells.
func MeasureStats(view RecordView, measure string) Stats {
	var st Stats
	var acc accumulator
	for i := 0; i < view.Len(); i++ {
		f, ok := view.Value(i, measure).Float()
		if !ok {
			st.Nulls++
			continue
		}
		if st.Count == 0 || f < st.Min {
			st.Min = f
		}
		if st.Count == 0 || f > st.Max {
			st.Max = f
		}
		st.Count++
		acc.add(f)
	}
	st.Sum = acc.value()
	return st
}

// UniqueValues returns distinct values of a column in first-seen order.
func UniqueValues(view RecordView, column string) []Value {
	seen := make(map[Value]bool)
	var out []Value
	for i := 0; i < view.Len(); i++ {
		v := view.Value(i, column)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// RoundTo2 rounds a float to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// accumulator sums exactly in decimal; non-finite inputs bypass the decimal
// (it cannot represent them) and are folded in at the end.
type accumulator struct {
	sum   decimal.Decimal
	extra float64
}

func (a *accumulator) add(f float64) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		a.extra += f
		return
	}
	a.sum = a.sum.Add(decimal.NewFromFloat(f))
}

func (a accumulator) value() float64 {
	f, _ := a.sum.Float64()
	return f + a.extra
}
