// Package etl ties loading, the pipeline, the result store and the
// exporter into the two operations the service exposes: run a batch and
// export the latest result.
package etl

import (
	"context"
	"log/slog"

	"github.com/adquant/adroi/internal/export"
	"github.com/adquant/adroi/internal/ingest"
	"github.com/adquant/adroi/internal/metrics"
	"github.com/adquant/adroi/internal/models"
	"github.com/adquant/adroi/internal/pipeline"
	"github.com/adquant/adroi/internal/store"
)

type ETL struct {
	loader *ingest.Loader
	pipe   *pipeline.Pipeline
	st     *store.MemoryStore
	exp    *export.Exporter
	log    *slog.Logger
	met    *metrics.PipelineMetrics
}

func New(loader *ingest.Loader, pipe *pipeline.Pipeline, st *store.MemoryStore, exp *export.Exporter, log *slog.Logger, met *metrics.PipelineMetrics) *ETL {
	return &ETL{loader: loader, pipe: pipe, st: st, exp: exp, log: log, met: met}
}

// Run loads the batch, executes the pipeline and stores the result. A
// load failure (missing file, SchemaError) aborts before any
// computation; row-level problems never surface here.
func (e *ETL) Run(ctx context.Context) (*models.Result, error) {
	tables, err := e.loader.Load()
	if err != nil {
		e.met.IncFailure()
		return nil, err
	}
	res, err := e.pipe.Run(ctx, tables)
	if err != nil {
		e.met.IncFailure()
		return nil, err
	}
	e.st.SetResult(res)
	return res, nil
}

// Export writes the latest stored result to the configured outputs.
func (e *ETL) Export(ctx context.Context) (int, error) {
	res, _, ok := e.st.Latest()
	if !ok {
		return 0, ErrNoResult
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return e.exp.Export(res)
}
