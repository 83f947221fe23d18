package pipeline

import (
	"sort"

	"github.com/adquant/adroi/internal/models"
)

// RevenueInstallJoin is the outcome of the first merge. Rows carries
// every install (with zero revenue for non-paying users); Unattributed
// carries revenue whose user matched no install. Neither side is ever
// silently dropped.
type RevenueInstallJoin struct {
	Rows         []models.JoinedUserRow
	Unattributed []models.UserDailyRevenue
}

// JoinRevenueInstalls merges user-daily revenue with installs on userId.
// Outer semantics: an install with N revenue days yields N rows, an
// install with none yields one zero-revenue row, and revenue without an
// install lands in the unattributed bucket for reconciliation.
func JoinRevenueInstalls(revenue []models.UserDailyRevenue, installs []models.InstallEvent) RevenueInstallJoin {
	byUser := make(map[string][]models.UserDailyRevenue, len(revenue))
	for _, r := range revenue {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	var out RevenueInstallJoin
	installUsers := make(map[string]struct{}, len(installs))
	for _, inst := range installs {
		installUsers[inst.UserID] = struct{}{}
		days, ok := byUser[inst.UserID]
		if !ok {
			out.Rows = append(out.Rows, models.JoinedUserRow{
				UserID:      inst.UserID,
				Key:         inst.Key,
				Channel:     inst.Channel,
				Campaign:    inst.Campaign,
				Creative:    inst.Creative,
				Date:        inst.InstalledAt,
				CountryCode: Unknown,
				Platform:    Unknown,
				Revenue:     0,
			})
			continue
		}
		for _, day := range days {
			out.Rows = append(out.Rows, models.JoinedUserRow{
				UserID:      inst.UserID,
				Key:         inst.Key,
				Channel:     inst.Channel,
				Campaign:    inst.Campaign,
				Creative:    inst.Creative,
				Date:        day.Date,
				CountryCode: day.CountryCode,
				Platform:    day.Platform,
				Revenue:     day.TotalRevenue,
			})
		}
	}
	for _, r := range revenue {
		if _, ok := installUsers[r.UserID]; !ok {
			out.Unattributed = append(out.Unattributed, r)
		}
	}
	return out
}

type cohortKey struct {
	key      string
	channel  string
	campaign string
	creative string
}

// GroupCohorts collapses the joined rows to one per composite key plus
// attribution labels. Installs counts joined rows (a paying user
// contributes one per revenue day, matching the row-count the merge
// produces); Users counts distinct user ids.
func GroupCohorts(rows []models.JoinedUserRow) []models.CohortRow {
	type acc struct {
		installs int
		users    map[string]struct{}
		revenue  float64
	}
	agg := make(map[cohortKey]*acc)
	for _, r := range rows {
		k := cohortKey{key: r.Key, channel: r.Channel, campaign: r.Campaign, creative: r.Creative}
		a, ok := agg[k]
		if !ok {
			a = &acc{users: make(map[string]struct{})}
			agg[k] = a
		}
		a.installs++
		a.users[r.UserID] = struct{}{}
		a.revenue += r.Revenue
	}
	out := make([]models.CohortRow, 0, len(agg))
	for k, a := range agg {
		out = append(out, models.CohortRow{
			Key:      k.key,
			Channel:  k.channel,
			Campaign: k.campaign,
			Creative: k.creative,
			Installs: a.installs,
			Users:    len(a.users),
			Revenue:  a.revenue,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Campaign < out[j].Campaign
	})
	return out
}

// JoinCohortsSpend merges cohorts with campaign cost summaries on the
// campaign label. Left semantics: every cohort survives, with zero cost
// when no spend record matches (under-attributed spend shows up as an
// anomaly in allocation). Spend records matching no cohort are returned
// separately so reconciliation totals are still possible.
func JoinCohortsSpend(cohorts []models.CohortRow, spend []models.CampaignCostSummary) ([]models.RevenueCostRow, []models.CampaignCostSummary) {
	byCampaign := make(map[string]models.CampaignCostSummary, len(spend))
	for _, s := range spend {
		byCampaign[s.Campaign] = s
	}

	rows := make([]models.RevenueCostRow, 0, len(cohorts))
	seen := make(map[string]struct{}, len(cohorts))
	for _, c := range cohorts {
		row := models.RevenueCostRow{
			Key:      c.Key,
			Channel:  c.Channel,
			Campaign: c.Campaign,
			Creative: c.Creative,
			Installs: c.Installs,
			Users:    c.Users,
			Revenue:  c.Revenue,
		}
		if s, ok := byCampaign[c.Campaign]; ok {
			row.Cost = s.Cost
			row.CampaignInstalls = s.Installs
			row.Clicks = s.Clicks
			seen[c.Campaign] = struct{}{}
		}
		rows = append(rows, row)
	}

	var unmatched []models.CampaignCostSummary
	for _, s := range spend {
		if _, ok := seen[s.Campaign]; !ok {
			unmatched = append(unmatched, s)
		}
	}
	sort.Slice(unmatched, func(i, j int) bool { return unmatched[i].Campaign < unmatched[j].Campaign })
	return rows, unmatched
}
