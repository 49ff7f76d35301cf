package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/spektr-org/drilldash/engine"
	"github.com/spektr-org/drilldash/helpers"
	"github.com/spektr-org/drilldash/internal/logging"
)

// ============================================================================
// COORDINATOR — Owns the dataset and active filters
// ============================================================================
// Events (ingest commit, filter set, filter clear) are applied one at a time.
// After each event the snapshot is recomputed from scratch and pushed to
// subscribers, so derived state never goes stale.
//
// Overlapping ingests: the newest wins. Starting an ingest cancels the one in
// flight; the cancelled call returns ErrIngestSuperseded and commits nothing.
// ============================================================================

var (
	// ErrIngestSuperseded is returned by an Ingest that was replaced by a
	// newer Ingest before it could commit.
	ErrIngestSuperseded = errors.New("dashboard: ingest superseded by a newer file")

	// ErrUnknownChart is returned by SelectSlice for a key not in the
	// current chart set.
	ErrUnknownChart = errors.New("dashboard: unknown chart")

	// ErrNotFilterable is returned by SelectSlice for line and area charts.
	ErrNotFilterable = errors.New("dashboard: chart does not filter")
)

// Coordinator is the dashboard state machine. Safe for concurrent use.
type Coordinator struct {
	cfg *config

	ingestMu     sync.Mutex
	ingestGen    uint64
	cancelIngest context.CancelFunc

	// eventMu serializes events so subscribers observe them in order.
	eventMu sync.Mutex

	stateMu sync.RWMutex
	dataset *Dataset
	filters engine.Filters
	current Snapshot
	subs    []subscriber // subscription order
	nextSub int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// New creates an empty dashboard showing the welcome state.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		cfg: applyOptions(opts),
	}
	c.current = c.compute()
	return c
}

// ============================================================================
// INGEST
// ============================================================================

// Ingest reads a CSV or Excel file and replaces the dataset with it.
//
// Unsupported extensions are ignored: the call logs a warning, returns nil, and
// leaves the dashboard untouched. A read or parse failure is returned and the
// previous dataset stays on screen.
func (c *Coordinator) Ingest(ctx context.Context, name string, r io.Reader) error {
	log := logging.Logger()
	if !helpers.Supported(name) {
		log.Warn("ignoring unsupported file", "name", name, "ext", helpers.Extension(name))
		return nil
	}

	ctx, gen := c.beginIngest(ctx)
	defer c.endIngest(gen)

	data, err := readAll(ctx, r)
	if err != nil {
		if c.superseded(gen) {
			return ErrIngestSuperseded
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	table, err := helpers.Parse(name, data)
	if err != nil {
		log.Warn("parse failed", "name", name, "err", err)
		return fmt.Errorf("parse %s: %w", name, err)
	}

	records := engine.Normalize(table.Records, c.cfg.EngineOptions...)
	ds := &Dataset{
		ID:       c.cfg.NewID(),
		Name:     name,
		Schema:   engine.NewSchema(table.Columns, engine.Infer(records, c.cfg.EngineOptions...)),
		Records:  records,
		LoadedAt: c.cfg.Now(),
	}

	c.eventMu.Lock()
	defer c.eventMu.Unlock()

	if c.superseded(gen) {
		return ErrIngestSuperseded
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ingest %s: %w", name, err)
	}

	c.commit(func() {
		c.dataset = ds
		if !c.cfg.KeepFiltersOnIngest {
			c.filters = engine.Filters{}
		}
	})

	log.Info("dataset loaded",
		"id", ds.ID, "name", name, "rows", ds.Len(),
		"numeric", len(ds.Schema.Numeric()), "categorical", len(ds.Schema.Categorical()))
	return nil
}

// IngestFS opens name from fsys and ingests it.
func (c *Coordinator) IngestFS(ctx context.Context, fsys fs.FS, name string) error {
	if !helpers.Supported(name) {
		logging.Logger().Warn("ignoring unsupported file", "name", name, "ext", helpers.Extension(name))
		return nil
	}
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return c.Ingest(ctx, name, f)
}

func (c *Coordinator) beginIngest(parent context.Context) (context.Context, uint64) {
	c.ingestMu.Lock()
	defer c.ingestMu.Unlock()

	if c.cancelIngest != nil {
		c.cancelIngest()
	}
	ctx, cancel := context.WithCancel(parent)
	c.ingestGen++
	c.cancelIngest = cancel
	return ctx, c.ingestGen
}

func (c *Coordinator) endIngest(gen uint64) {
	c.ingestMu.Lock()
	defer c.ingestMu.Unlock()

	if gen == c.ingestGen && c.cancelIngest != nil {
		c.cancelIngest()
		c.cancelIngest = nil
	}
}

func (c *Coordinator) superseded(gen uint64) bool {
	c.ingestMu.Lock()
	defer c.ingestMu.Unlock()
	return gen != c.ingestGen
}

// ============================================================================
// FILTER EVENTS
// ============================================================================

// FilterBy sets the filter for column to value, replacing any previous value
// for that column. Other columns' filters are kept.
func (c *Coordinator) FilterBy(column string, value engine.Value) {
	c.eventMu.Lock()
	defer c.eventMu.Unlock()
	c.filterBy(column, value)
}

// filterBy applies a filter event. Caller holds eventMu.
func (c *Coordinator) filterBy(column string, value engine.Value) {
	logging.Logger().Debug("filter set", "column", column, "value", value.String())
	c.commit(func() {
		c.filters.Set(column, value)
	})
}

// ClearFilter removes the filter on column. Clearing an absent filter still
// republishes the (unchanged) snapshot.
func (c *Coordinator) ClearFilter(column string) {
	c.eventMu.Lock()
	defer c.eventMu.Unlock()

	logging.Logger().Debug("filter cleared", "column", column)
	c.commit(func() {
		c.filters.Remove(column)
	})
}

// ClearFilters removes every active filter.
func (c *Coordinator) ClearFilters() {
	c.eventMu.Lock()
	defer c.eventMu.Unlock()

	c.commit(func() {
		c.filters = engine.Filters{}
	})
}

// SelectSlice filters by the category behind one point of a bar or pie chart,
// the way clicking a bar or slice does. The chart is resolved against the
// snapshot current when the event is applied.
func (c *Coordinator) SelectSlice(chartKey string, point int) error {
	c.eventMu.Lock()
	defer c.eventMu.Unlock()

	c.stateMu.RLock()
	chart, ok := c.current.Charts.Find(chartKey)
	c.stateMu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChart, chartKey)
	}
	if !chart.Filterable() {
		return fmt.Errorf("%w: %q is a %s chart", ErrNotFilterable, chartKey, chart.Kind)
	}
	if point < 0 || point >= len(chart.Points) {
		return fmt.Errorf("dashboard: point %d out of range for %q (%d points)", point, chartKey, len(chart.Points))
	}
	c.filterBy(chart.FilterColumn, chart.Points[point].Category)
	return nil
}

// ============================================================================
// STATE
// ============================================================================

// Snapshot returns the current derived state.
func (c *Coordinator) Snapshot() Snapshot {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.current
}

// Dataset returns the loaded dataset, or nil before the first ingest.
func (c *Coordinator) Dataset() *Dataset {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.dataset
}

// Filters returns a copy of the active filters.
func (c *Coordinator) Filters() engine.Filters {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.filters.Clone()
}

// Subscribe registers fn to receive a snapshot after every event. Callbacks run
// on the goroutine that issued the event and must not issue events themselves.
// The returned func unsubscribes.
func (c *Coordinator) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.stateMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.stateMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.stateMu.Lock()
			for i, sub := range c.subs {
				if sub.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					break
				}
			}
			c.stateMu.Unlock()
		})
	}
}

// commit applies mutate, recomputes the snapshot, and notifies subscribers.
// Caller holds eventMu.
func (c *Coordinator) commit(mutate func()) {
	c.stateMu.Lock()
	mutate()
	c.current = c.compute()
	snap := c.current
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub.fn)
	}
	c.stateMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// compute derives the snapshot. Caller holds stateMu.
func (c *Coordinator) compute() Snapshot {
	var sch engine.Schema
	snap := Snapshot{Filters: c.filters.Clone()}
	if c.dataset != nil {
		sch = c.dataset.Schema
		snap.DatasetID = c.dataset.ID
		snap.Name = c.dataset.Name
	}

	result := engine.Execute(c.dataset.View(), sch, c.filters, c.cfg.EngineOptions...)

	snap.Schema = sch
	snap.Visible = engine.Records(result.Visible)
	snap.Total = result.Total
	snap.Charts = result.Charts
	snap.Table = result.Table
	snap.Summary = result.Summary
	return snap
}
