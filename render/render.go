// Package render draws derived chart specs as PNG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/drilldash/engine"
)

// ============================================================================
// RENDER — ChartSpec → PNG
// ============================================================================
// bar  → chart.BarChart, one bar per point
// pie  → chart.PieChart, one slice per point
// line → chart.Chart with a ContinuousSeries
// area → same as line, filled
// ============================================================================

// ErrNothingToDraw is returned for a chart with no drawable points.
var ErrNothingToDraw = errors.New("render: chart has no drawable points")

// Option configures the output image.
type Option func(*config)

type config struct {
	Width  int
	Height int
}

// WithSize sets the image size in pixels.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 {
			c.Width = width
		}
		if height > 0 {
			c.Height = height
		}
	}
}

// PNG renders spec to w.
func PNG(w io.Writer, spec engine.ChartSpec, opts ...Option) error {
	cfg := &config{Width: 800, Height: 450}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(spec.Points) == 0 {
		return fmt.Errorf("%w: %s", ErrNothingToDraw, spec.Key)
	}

	switch spec.Kind {
	case engine.ChartBar:
		return renderBar(w, spec, cfg)
	case engine.ChartPie:
		return renderPie(w, spec, cfg)
	case engine.ChartLine, engine.ChartArea:
		return renderSeries(w, spec, cfg)
	default:
		return fmt.Errorf("render: unknown chart kind %q", spec.Kind)
	}
}

// FileName returns a filesystem-safe PNG name for the chart, e.g.
// "Pie Chart: amount by region" → "pie_chart_amount_by_region.png".
func FileName(spec engine.ChartSpec) string {
	name := spec.Title
	if name == "" {
		name = spec.Key
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, name)
	snake := strcase.ToSnake(strings.Join(strings.Fields(cleaned), " "))
	if snake == "" {
		snake = "chart"
	}
	return snake + ".png"
}

// ============================================================================
// RENDERERS
// ============================================================================

func renderBar(w io.Writer, spec engine.ChartSpec, cfg *config) error {
	fill := color(spec.Colors, 0)
	bars := make([]chart.Value, 0, len(spec.Points))
	lo, hi := 0.0, 0.0
	for _, p := range spec.Points {
		y := finite(p.Y)
		lo, hi = math.Min(lo, y), math.Max(hi, y)
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: y,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	if hi == lo {
		hi = lo + 1
	}

	// Fit every bar on the canvas.
	slot := cfg.Width / (len(bars) + 1)
	barWidth := max(slot*2/3, 1)
	spacing := max(slot-barWidth, 1)

	bc := chart.BarChart{
		Title:      spec.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Name: spec.YKey, Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

func renderPie(w io.Writer, spec engine.ChartSpec, cfg *config) error {
	values := make([]chart.Value, 0, len(spec.Points))
	for i, p := range spec.Points {
		if !(p.Y > 0) || math.IsInf(p.Y, 0) {
			continue
		}
		c := color(spec.Colors, i)
		values = append(values, chart.Value{
			Label: p.Label,
			Value: p.Y,
			Style: chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: %s", ErrNothingToDraw, spec.Key)
	}

	pc := chart.PieChart{
		Title:  spec.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Values: values,
	}
	return pc.Render(chart.PNG, w)
}

func renderSeries(w io.Writer, spec engine.ChartSpec, cfg *config) error {
	xs := make([]float64, 0, len(spec.Points))
	ys := make([]float64, 0, len(spec.Points))
	for _, p := range spec.Points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) == 0 {
		return fmt.Errorf("%w: %s", ErrNothingToDraw, spec.Key)
	}
	// A single point cannot span an axis; repeat it one unit over.
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	c := color(spec.Colors, 0)
	style := chart.Style{StrokeColor: c, StrokeWidth: 2}
	if spec.Kind == engine.ChartArea {
		style.FillColor = c.WithAlpha(160)
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: spec.XKey, Range: span(xs)},
		YAxis:      chart.YAxis{Name: spec.YKey, Range: span(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: spec.YKey, XValues: xs, YValues: ys, Style: style},
		},
	}
	return ch.Render(chart.PNG, w)
}

// ============================================================================
// HELPERS
// ============================================================================

func color(palette []string, i int) drawing.Color {
	if len(palette) == 0 {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(strings.TrimPrefix(palette[i%len(palette)], "#"))
}

func span(vals []float64) *chart.ContinuousRange {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finite(f float64) float64 {
	if !isFinite(f) {
		return 0
	}
	return f
}
