// Package report serves analyst queries over the latest pipeline result:
// filtered row listings, cohort listings, and a distribution summary.
package report

import (
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/adquant/adroi/internal/models"
	"github.com/adquant/adroi/internal/store"
)

// ErrNoResult means no pipeline run has completed yet.
var ErrNoResult = errors.New("no pipeline result available yet")

type Service struct{ st *store.MemoryStore }

func NewService(st *store.MemoryStore) *Service { return &Service{st: st} }

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func csvSet(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, p := range strings.Split(s, ",") {
		p = norm(p)
		if p != "" {
			out[p] = struct{}{}
		}
	}
	return out
}

// QueryRows filters the final metric table by channel/campaign sets and
// paginates deterministically (key, then campaign).
func (s *Service) QueryRows(v url.Values) ([]models.RevenueCostRow, error) {
	if _, _, ok := s.st.Latest(); !ok {
		return nil, ErrNoResult
	}
	chSet := csvSet(v.Get("channel"))
	campSet := csvSet(v.Get("campaign"))
	limit := atoiDef(v.Get("limit"), 100)
	offset := atoiDef(v.Get("offset"), 0)

	rows := s.st.QueryRows(func(r models.RevenueCostRow) bool {
		if len(chSet) > 0 {
			if _, ok := chSet[norm(r.Channel)]; !ok {
				return false
			}
		}
		if len(campSet) > 0 {
			if _, ok := campSet[norm(r.Campaign)]; !ok {
				return false
			}
		}
		return true
	})

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Key != rows[j].Key {
			return rows[i].Key < rows[j].Key
		}
		return rows[i].Campaign < rows[j].Campaign
	})

	limit, offset = clampLimitOffset(limit, offset, len(rows))
	return paginate(rows, limit, offset), nil
}

// QueryCohorts filters the grouped revenue x installs table.
func (s *Service) QueryCohorts(v url.Values) ([]models.CohortRow, error) {
	if _, _, ok := s.st.Latest(); !ok {
		return nil, ErrNoResult
	}
	chSet := csvSet(v.Get("channel"))
	limit := atoiDef(v.Get("limit"), 100)
	offset := atoiDef(v.Get("offset"), 0)

	rows := s.st.QueryCohorts(func(r models.CohortRow) bool {
		if len(chSet) > 0 {
			if _, ok := chSet[norm(r.Channel)]; !ok {
				return false
			}
		}
		return true
	})

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Key != rows[j].Key {
			return rows[i].Key < rows[j].Key
		}
		return rows[i].Campaign < rows[j].Campaign
	})

	limit, offset = clampLimitOffset(limit, offset, len(rows))
	return paginate(rows, limit, offset), nil
}

// Summary is the analyst overview of one run.
type Summary struct {
	Stats             models.RunStats `json:"stats"`
	Rows              int             `json:"rows"`
	TotalRevenue      float64         `json:"total_revenue"`
	TotalCost         float64         `json:"total_cost"`
	TotalAdjustedCost float64         `json:"total_adjusted_cost"`
	DailyROIMean      float64         `json:"daily_roi_mean"`
	DailyROIMedian    float64         `json:"daily_roi_median"`
	DailyROIStdDev    float64         `json:"daily_roi_stddev"`
	DailyROIMin       float64         `json:"daily_roi_min"`
	DailyROIMax       float64         `json:"daily_roi_max"`
}

// Summarize computes totals plus the daily-ROI distribution of the
// latest run.
func (s *Service) Summarize() (Summary, error) {
	res, _, ok := s.st.Latest()
	if !ok {
		return Summary{}, ErrNoResult
	}
	sum := Summary{Stats: res.Stats, Rows: len(res.Rows)}
	dailies := make([]float64, 0, len(res.Rows))
	for _, r := range res.Rows {
		sum.TotalRevenue += r.Revenue
		sum.TotalAdjustedCost += r.AdjustedCost
		dailies = append(dailies, r.DailyROI)
	}
	for _, s := range res.UnmatchedSpend {
		sum.TotalCost += s.Cost
	}
	// campaign cost repeats across its cohorts; count it once per campaign
	sum.TotalCost += campaignCostOnce(res.Rows)

	if len(dailies) > 0 {
		sum.DailyROIMean = statOr0(stats.Mean, dailies)
		sum.DailyROIMedian = statOr0(stats.Median, dailies)
		sum.DailyROIStdDev = statOr0(stats.StandardDeviation, dailies)
		sum.DailyROIMin = statOr0(stats.Min, dailies)
		sum.DailyROIMax = statOr0(stats.Max, dailies)
	}
	return sum, nil
}

func campaignCostOnce(rows []models.RevenueCostRow) float64 {
	seen := map[string]struct{}{}
	var total float64
	for _, r := range rows {
		if _, ok := seen[r.Campaign]; ok {
			continue
		}
		seen[r.Campaign] = struct{}{}
		total += r.Cost
	}
	return total
}

func statOr0(f func(stats.Float64Data) (float64, error), data []float64) float64 {
	v, err := f(data)
	if err != nil {
		return 0
	}
	return round3(v)
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset > n {
		offset = n
	}
	return limit, offset
}

func round3(f float64) float64 { return float64(int64(f*1000+0.5)) / 1000 }
