package models

import "time"

// InstallEvent is one recorded app install, attributed to a
// channel/campaign/creative triple. Key is the composite identifier
// built from the three labels.
type InstallEvent struct {
	UserID      string
	Channel     string
	Campaign    string
	Creative    string
	Key         string
	InstalledAt time.Time
}

// RevenueEvent is one in-app transaction. The user may not exist in the
// installs dataset; such revenue is still retained downstream.
type RevenueEvent struct {
	UserID      string
	CreatedAt   time.Time
	Date        time.Time // UTC calendar date of CreatedAt
	CountryCode string
	Platform    string
	Amount      float64
}

// AdSpendRecord is one campaign-day spend report from an ad network.
// Installs is the network-self-reported count; NetworkInstalls is the
// attribution platform's count. The two are reconciled at aggregation.
type AdSpendRecord struct {
	Campaign        string
	Channel         string
	Creative        string
	Key             string
	Cost            float64
	Installs        int
	NetworkInstalls int
	NetworkClicks   int
}

// UserDailyRevenue is revenue aggregated per user per calendar day.
type UserDailyRevenue struct {
	UserID       string
	Date         time.Time
	CountryCode  string
	Platform     string
	TotalRevenue float64
}

// CampaignCostSummary is ad spend aggregated per campaign. Installs sums
// max(network_installs, installs) per row: neither source is assumed to
// undercount, so the larger wins.
type CampaignCostSummary struct {
	Campaign string
	Cost     float64
	Installs int
	Clicks   int
}

// JoinedUserRow is one row of the ungrouped revenue x installs join,
// kept as an optional secondary output for visualization.
type JoinedUserRow struct {
	UserID      string
	Key         string
	Channel     string
	Campaign    string
	Creative    string
	Date        time.Time
	CountryCode string
	Platform    string
	Revenue     float64
}

// CohortRow is the revenue x installs join grouped by composite key and
// the three attribution labels. Installs counts joined rows, Users counts
// distinct user ids.
type CohortRow struct {
	Key      string
	Channel  string
	Campaign string
	Creative string
	Installs int
	Users    int
	Revenue  float64
}

// RevenueCostRow is one row of the final metric table.
// Installs is the cohort's observed install count (installs_x),
// CampaignInstalls the campaign-level reconciled count (installs_y).
// DaysToPayoff is nil outside daily_roi (0,1).
type RevenueCostRow struct {
	Key              string   `json:"key"`
	Channel          string   `json:"channel"`
	Campaign         string   `json:"campaign"`
	Creative         string   `json:"creative"`
	Installs         int      `json:"installs_x"`
	CampaignInstalls int      `json:"installs_y"`
	Users            int      `json:"users"`
	Revenue          float64  `json:"revenue"`
	Cost             float64  `json:"cost"`
	Clicks           int      `json:"clicks"`
	AdjustedCost     float64  `json:"adjusted_cost"`
	DailyROI         float64  `json:"daily_roi"`
	AnnualROI        float64  `json:"roi"`
	DaysToPayoff     *float64 `json:"days_to_payoff,omitempty"`
	Imputed          bool     `json:"imputed,omitempty"`
}
