package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/spektr-org/drilldash/engine"
)

// Option configures a Coordinator via functional options pattern.
type Option func(*config)

type config struct {
	KeepFiltersOnIngest bool
	EngineOptions       []engine.Option
	Now                 func() time.Time
	NewID               func() string
}

// WithKeepFiltersOnIngest keeps the active filters when a new file replaces
// the dataset. By default a new dataset starts unfiltered.
func WithKeepFiltersOnIngest(keep bool) Option {
	return func(c *config) {
		c.KeepFiltersOnIngest = keep
	}
}

// WithEngineOptions passes options through to inference, normalization, and
// chart derivation.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(c *config) {
		c.EngineOptions = append(c.EngineOptions, opts...)
	}
}

// WithClock overrides the time source used for Dataset.LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.Now = now
		}
	}
}

// WithIDGenerator overrides how dataset IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(c *config) {
		if newID != nil {
			c.NewID = newID
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}
