package pipeline

import (
	"log/slog"

	"github.com/adquant/adroi/internal/models"
)

// DaysPerYear is the flat annualization factor: daily ROI is assumed
// constant, not compounded.
const DaysPerYear = 365

// ROIResult is the final metric table plus the count of rows excluded
// for a zero post-imputation cost.
type ROIResult struct {
	Rows             []models.RevenueCostRow
	ExcludedZeroCost int
}

// ComputeROI derives daily_roi = revenue/adjusted_cost, its flat
// annualization, and days_to_payoff = 1/daily_roi for rows with
// daily_roi in (0,1). Rows still carrying a zero adjusted cost would
// divide by zero; they are excluded and counted rather than emitting
// NaN/Inf. Payback outside (0,1) leaves DaysToPayoff nil, not clipped.
func ComputeROI(rows []models.RevenueCostRow, log *slog.Logger) ROIResult {
	var res ROIResult
	res.Rows = make([]models.RevenueCostRow, 0, len(rows))
	for _, r := range rows {
		if r.AdjustedCost == 0 {
			res.ExcludedZeroCost++
			log.Warn("row excluded from ROI",
				slog.String("key", r.Key),
				slog.String("campaign", r.Campaign),
				slog.String("err", (&DivisionError{Op: "daily ROI"}).Error()))
			continue
		}
		r.DailyROI = r.Revenue / r.AdjustedCost
		r.AnnualROI = r.DailyROI * DaysPerYear
		if r.DailyROI > 0 && r.DailyROI < 1 {
			days := 1 / r.DailyROI
			r.DaysToPayoff = &days
		}
		res.Rows = append(res.Rows, r)
	}
	return res
}
