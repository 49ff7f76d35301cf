package engine

import "fmt"

// ============================================================================
// CHART BUILDER — Derives the chart grid from visible rows + schema
// ============================================================================
// Derived, never stored: re-run whenever the visible rows change.
//
//   bar   — every (categorical x, numeric y) pair, one bar per row
//   line  — with ≥2 numeric columns: first numeric is the shared x-axis,
//   area    one line and one area chart per remaining numeric column
//   pie   — every (categorical, numeric) pair, summed per category; slices
//           with a non-positive sum are dropped, and the pie renders only
//           when min < slices < max (default 1 < n < 20)
//
// Bars and pie slices are filter inputs: clicking one filters by its category.
// ============================================================================

// DeriveCharts builds the chart set for the visible rows of a dataset.
// Returns a set with Placeholder populated when nothing can be charted.
func DeriveCharts(view RecordView, sch Schema, opts ...Option) ChartSet {
	cfg := applyOptions(opts)
	set := ChartSet{Charts: []ChartSpec{}}

	if view == nil || view.Len() == 0 || sch.IsEmpty() {
		set.Placeholder = NoChartsMessage
		return set
	}

	numeric := sch.Numeric()
	categorical := sch.Categorical()

	for _, x := range categorical {
		for _, y := range numeric {
			set.Charts = append(set.Charts, buildBar(view, x, y, cfg))
		}
	}

	if len(numeric) >= 2 {
		x := numeric[0]
		for _, y := range numeric[1:] {
			set.Charts = append(set.Charts, buildSeries(view, ChartLine, x, y, cfg))
		}
		for _, y := range numeric[1:] {
			set.Charts = append(set.Charts, buildSeries(view, ChartArea, x, y, cfg))
		}
	}

	for _, x := range categorical {
		for _, y := range numeric {
			if pie, ok := buildPie(view, x, y, cfg); ok {
				set.Charts = append(set.Charts, pie)
			}
		}
	}

	if set.Empty() {
		set.Placeholder = NoChartsMessage
	}
	return set
}

// ============================================================================
// SPEC BUILDERS
// ============================================================================

func buildBar(view RecordView, x, y string, cfg *config) ChartSpec {
	points := make([]ChartPoint, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		cat := view.Value(i, x)
		val, _ := view.Value(i, y).Float()
		points = append(points, ChartPoint{
			Label:    cat.String(),
			Category: cat,
			Y:        val,
		})
	}

	return ChartSpec{
		Key:          fmt.Sprintf("%s-%s-bar", x, y),
		Kind:         ChartBar,
		Title:        fmt.Sprintf("%s by %s", y, x),
		XKey:         x,
		YKey:         y,
		Points:       points,
		Colors:       []string{cfg.Palette.Bar},
		FilterColumn: x,
	}
}

func buildSeries(view RecordView, kind ChartKind, x, y string, cfg *config) ChartSpec {
	points := make([]ChartPoint, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		xv, okX := view.Value(i, x).Float()
		yv, okY := view.Value(i, y).Float()
		if !okX || !okY {
			continue
		}
		points = append(points, ChartPoint{
			Label: FormatNumber(xv),
			X:     xv,
			Y:     yv,
		})
	}

	spec := ChartSpec{
		Key:    fmt.Sprintf("%s-%s-%s", x, y, kind),
		Kind:   kind,
		XKey:   x,
		YKey:   y,
		Points: points,
	}
	if kind == ChartArea {
		spec.Title = fmt.Sprintf("Area Chart: %s over %s", y, x)
		spec.Colors = []string{cfg.Palette.Area}
	} else {
		spec.Title = fmt.Sprintf("%s over %s", y, x)
		spec.Colors = []string{cfg.Palette.Line}
	}
	return spec
}

func buildPie(view RecordView, x, y string, cfg *config) (ChartSpec, bool) {
	groups := SumBy(view, x, y)

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		if g.Value <= 0 {
			continue
		}
		points = append(points, ChartPoint{
			Label:    g.Label,
			Category: g.Key,
			Y:        g.Value,
		})
	}

	if len(points) <= cfg.PieMinSlices || len(points) >= cfg.PieMaxSlices {
		return ChartSpec{}, false
	}

	return ChartSpec{
		Key:          fmt.Sprintf("%s-%s-pie", x, y),
		Kind:         ChartPie,
		Title:        fmt.Sprintf("Pie Chart: %s by %s", y, x),
		XKey:         x,
		YKey:         y,
		Points:       points,
		Colors:       assignColors(cfg.Palette.Pie, len(points)),
		FilterColumn: x,
	}, true
}

func assignColors(palette []string, count int) []string {
	if len(palette) == 0 {
		return nil
	}
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
