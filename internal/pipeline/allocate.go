package pipeline

import (
	"log/slog"

	"github.com/adquant/adroi/internal/models"
)

// AllocationResult carries the cost-allocated rows plus the imputation
// bookkeeping the caller reports.
type AllocationResult struct {
	Rows            []models.RevenueCostRow
	AvgCostPerClick float64
	ImputedRows     int
	Unallocatable   int // anomalous rows the fallback could not reach
}

// AllocateCosts apportions each campaign's cost across its cohorts in
// proportion to install share: adjusted_cost = cost * installs_x/installs_y.
// A zero installs_y is defined as adjusted_cost = 0 (never NaN/Inf) and
// the row joins the anomaly set.
//
// Rows whose adjusted cost lands at exactly 0 are treated as allocation
// failures, not free traffic. They are re-imputed once, after the
// anomaly set is fixed, from the global average cost per click of the
// NON-anomalous rows, so the imputation never feeds its own average:
// adjusted_cost = (installs_x/installs_y) * avg_cost_per_click.
// When that average is undefined (no healthy rows, or zero clicks among
// them) the anomalous rows stay at 0 and are excluded from ROI later.
func AllocateCosts(rows []models.RevenueCostRow, log *slog.Logger) AllocationResult {
	out := AllocationResult{Rows: make([]models.RevenueCostRow, len(rows))}
	copy(out.Rows, rows)

	var anomalies []int
	var healthyCost float64
	var healthyClicks int
	for i := range out.Rows {
		r := &out.Rows[i]
		if r.CampaignInstalls > 0 {
			r.AdjustedCost = r.Cost * float64(r.Installs) / float64(r.CampaignInstalls)
		} else {
			r.AdjustedCost = 0
			if r.Cost > 0 {
				log.Warn("campaign has cost but zero reconciled installs",
					slog.String("campaign", r.Campaign),
					slog.String("err", (&DivisionError{Op: "cost allocation"}).Error()))
			}
		}
		if r.AdjustedCost == 0 {
			anomalies = append(anomalies, i)
		} else {
			healthyCost += r.AdjustedCost
			healthyClicks += r.Clicks
		}
	}

	if len(anomalies) == 0 {
		return out
	}
	if healthyClicks == 0 {
		log.Warn("cost imputation impossible, anomalous rows stay unallocated",
			slog.Int("rows", len(anomalies)),
			slog.String("err", (&DivisionError{Op: "avg cost per click"}).Error()))
		out.Unallocatable = len(anomalies)
		return out
	}

	out.AvgCostPerClick = healthyCost / float64(healthyClicks)
	for _, i := range anomalies {
		r := &out.Rows[i]
		if r.CampaignInstalls == 0 {
			out.Unallocatable++
			continue
		}
		r.AdjustedCost = float64(r.Installs) / float64(r.CampaignInstalls) * out.AvgCostPerClick
		r.Imputed = true
		out.ImputedRows++
	}
	log.Info("zero-cost rows imputed",
		slog.Int("imputed", out.ImputedRows),
		slog.Int("unallocatable", out.Unallocatable),
		slog.Float64("avg_cost_per_click", out.AvgCostPerClick))
	return out
}
