// Package pipeline implements the batch transform that reconciles ad
// spend, installs and revenue into one campaign-level metric table:
// normalize -> aggregate -> join -> allocate cost -> derive ROI.
// Every stage takes its input tables by value and returns new ones; no
// stage mutates a table another stage still holds.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adquant/adroi/internal/ingest"
	"github.com/adquant/adroi/internal/metrics"
	"github.com/adquant/adroi/internal/models"
)

type Pipeline struct {
	keyer Keyer
	log   *slog.Logger
	met   *metrics.PipelineMetrics
}

func New(keyer Keyer, log *slog.Logger, met *metrics.PipelineMetrics) *Pipeline {
	return &Pipeline{keyer: keyer, log: log, met: met}
}

// Run executes the full transform over one loaded batch. Row-level
// problems are handled locally (drop, sentinel, impute) and reported in
// the stats; only a cancelled context makes Run return an error, since
// schema validation already happened at load time.
func (p *Pipeline) Run(ctx context.Context, t *ingest.Tables) (*models.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	stats := models.RunStats{RunID: uuid.NewString(), StartedAt: start}

	revenue, droppedRev := NormalizeRevenue(t.Revenue, p.log)
	installs, droppedInst := NormalizeInstalls(t.Installs, p.keyer, p.log)
	spend, droppedSpend := NormalizeAdSpend(t.AdSpend, p.keyer, p.log)
	stats.DroppedRevenueRows = droppedRev
	stats.DroppedInstallRows = droppedInst
	stats.DroppedAdSpendRows = droppedSpend
	p.met.AddDropped(ingest.RevenueFile, droppedRev)
	p.met.AddDropped(ingest.InstallsFile, droppedInst)
	p.met.AddDropped(ingest.AdSpendFile, droppedSpend)

	userDaily := AggregateRevenue(revenue)
	spendSummary := AggregateAdSpend(spend)

	joined := JoinRevenueInstalls(userDaily, installs)
	cohorts := GroupCohorts(joined.Rows)
	costRows, unmatchedSpend := JoinCohortsSpend(cohorts, spendSummary)
	stats.UnattributedRevenue = len(joined.Unattributed)
	stats.UnmatchedSpendRows = len(unmatchedSpend)

	alloc := AllocateCosts(costRows, p.log)
	stats.ImputedRows = alloc.ImputedRows
	stats.UnallocatableRows = alloc.Unallocatable
	stats.AvgCostPerClick = alloc.AvgCostPerClick
	p.met.AddImputed(alloc.ImputedRows)

	final := ComputeROI(alloc.Rows, p.log)
	stats.ExcludedZeroCost = final.ExcludedZeroCost
	stats.OutputRows = len(final.Rows)
	p.met.AddExcluded(final.ExcludedZeroCost)

	stats.Duration = time.Since(start)
	p.met.IncRun()
	p.met.ObserveDuration(stats.Duration)
	p.log.Info("pipeline run complete",
		slog.String("run_id", stats.RunID),
		slog.Int("output_rows", stats.OutputRows),
		slog.Int("dropped_revenue", droppedRev),
		slog.Int("dropped_installs", droppedInst),
		slog.Int("dropped_adspend", droppedSpend),
		slog.Int("unattributed_revenue", stats.UnattributedRevenue),
		slog.Int("unmatched_spend", stats.UnmatchedSpendRows),
		slog.Int("imputed", stats.ImputedRows),
		slog.Int("excluded_zero_cost", stats.ExcludedZeroCost),
		slog.Duration("took", stats.Duration))

	return &models.Result{
		Rows:           final.Rows,
		Cohorts:        cohorts,
		UserRows:       joined.Rows,
		Unattributed:   joined.Unattributed,
		UnmatchedSpend: unmatchedSpend,
		Stats:          stats,
	}, nil
}
