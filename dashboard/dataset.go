package dashboard

import (
	"context"
	"io"
	"time"

	"github.com/spektr-org/drilldash/engine"
)

// Dataset is one loaded file after normalization. Records are never mutated
// once the dataset is committed; filters only select among them.
type Dataset struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Schema   engine.Schema   `json:"schema"`
	Records  []engine.Record `json:"records"`
	LoadedAt time.Time       `json:"loadedAt"`
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// View exposes the dataset records in header order.
func (d *Dataset) View() engine.RecordView {
	if d == nil {
		return engine.NewSliceView(nil)
	}
	return engine.NewTableView(engine.Table{Columns: d.Schema.Columns, Records: d.Records})
}

// Snapshot is everything a renderer needs for the current state.
type Snapshot struct {
	DatasetID string            `json:"datasetId,omitempty"`
	Name      string            `json:"name,omitempty"`
	Schema    engine.Schema     `json:"schema"`
	Visible   []engine.Record   `json:"visible"`
	Total     int               `json:"total"`
	Filters   engine.Filters    `json:"filters"`
	Charts    engine.ChartSet   `json:"charts"`
	Table     *engine.TableData `json:"table"`
	Summary   string            `json:"summary"`
}

// ctxReader stops a long read once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	return io.ReadAll(ctxReader{ctx: ctx, r: r})
}
