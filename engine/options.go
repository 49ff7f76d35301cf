package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for Infer / Normalize / DeriveCharts
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

// Palette holds the colors assigned to derived charts.
type Palette struct {
	Bar  string
	Line string
	Area string
	Pie  []string // cycled per slice
}

// DefaultPalette is the dashboard's stock color set.
var DefaultPalette = Palette{
	Bar:  "#8884d8",
	Line: "#82ca9d",
	Area: "#ffc658",
	Pie:  []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#AF19FF", "#FF1919"},
}

// NoChartsMessage is the placeholder shown when no chart can be derived.
const NoChartsMessage = "No suitable charts could be generated for this data. Please check your data and try again."

type config struct {
	FormattedNumbers bool // accept "$1,234.56"-style text during inference
	Palette          Palette
	PieMinSlices     int // exclusive lower bound
	PieMaxSlices     int // exclusive upper bound
}

// WithFormattedNumbers lets inference treat currency/thousands-formatted text
// ("$1,234.56", "12 %") as numeric, so normalization can clean it.
func WithFormattedNumbers() Option {
	return func(c *config) {
		c.FormattedNumbers = true
	}
}

// WithPalette overrides chart colors. Empty fields keep the defaults.
func WithPalette(p Palette) Option {
	return func(c *config) {
		if p.Bar != "" {
			c.Palette.Bar = p.Bar
		}
		if p.Line != "" {
			c.Palette.Line = p.Line
		}
		if p.Area != "" {
			c.Palette.Area = p.Area
		}
		if len(p.Pie) > 0 {
			c.Palette.Pie = p.Pie
		}
	}
}

// WithPieSliceBounds sets the exclusive slice-count window for pie charts.
// A pie renders only when min < slices < max.
func WithPieSliceBounds(min, max int) Option {
	return func(c *config) {
		c.PieMinSlices = min
		c.PieMaxSlices = max
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Palette:      DefaultPalette,
		PieMinSlices: 1,
		PieMaxSlices: 20,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}
