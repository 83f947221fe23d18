package pipeline

import (
	"sort"
	"time"

	"github.com/adquant/adroi/internal/models"
)

type userDayKey struct {
	userID      string
	date        time.Time
	countryCode string
	platform    string
}

// AggregateRevenue collapses revenue events to one row per
// (userId, date, countryCode, platform). Runs before the install join so
// the coarser granularity never multiplies rows. Total revenue is
// conserved: the output sums to the input.
func AggregateRevenue(events []models.RevenueEvent) []models.UserDailyRevenue {
	agg := make(map[userDayKey]float64, len(events))
	for _, e := range events {
		k := userDayKey{userID: e.UserID, date: e.Date, countryCode: e.CountryCode, platform: e.Platform}
		agg[k] += e.Amount
	}
	out := make([]models.UserDailyRevenue, 0, len(agg))
	for k, total := range agg {
		out = append(out, models.UserDailyRevenue{
			UserID:       k.userID,
			Date:         k.date,
			CountryCode:  k.countryCode,
			Platform:     k.platform,
			TotalRevenue: total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].CountryCode != out[j].CountryCode {
			return out[i].CountryCode < out[j].CountryCode
		}
		return out[i].Platform < out[j].Platform
	})
	return out
}

// AggregateAdSpend collapses spend reports to one summary per campaign.
// Install counts are reconciled per row by taking
// max(network_installs, installs) before summing.
func AggregateAdSpend(records []models.AdSpendRecord) []models.CampaignCostSummary {
	agg := make(map[string]*models.CampaignCostSummary, len(records))
	for _, r := range records {
		s, ok := agg[r.Campaign]
		if !ok {
			s = &models.CampaignCostSummary{Campaign: r.Campaign}
			agg[r.Campaign] = s
		}
		s.Cost += r.Cost
		s.Installs += maxInt(r.NetworkInstalls, r.Installs)
		s.Clicks += r.NetworkClicks
	}
	out := make([]models.CampaignCostSummary, 0, len(agg))
	for _, s := range agg {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Campaign < out[j].Campaign })
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
