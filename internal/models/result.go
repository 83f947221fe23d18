package models

import "time"

// RunStats summarizes one pipeline run for logging, the report API and
// reconciliation.
type RunStats struct {
	RunID               string        `json:"run_id"`
	StartedAt           time.Time     `json:"started_at"`
	Duration            time.Duration `json:"duration"`
	DroppedRevenueRows  int           `json:"dropped_revenue_rows"`
	DroppedInstallRows  int           `json:"dropped_install_rows"`
	DroppedAdSpendRows  int           `json:"dropped_adspend_rows"`
	UnattributedRevenue int           `json:"unattributed_revenue_rows"`
	UnmatchedSpendRows  int           `json:"unmatched_spend_rows"`
	ImputedRows         int           `json:"imputed_rows"`
	UnallocatableRows   int           `json:"unallocatable_rows"`
	ExcludedZeroCost    int           `json:"excluded_zero_cost_rows"`
	AvgCostPerClick     float64       `json:"avg_cost_per_click"`
	OutputRows          int           `json:"output_rows"`
}

// Result is the full outcome of one batch run. Everything is recomputed
// fresh per run; nothing persists past the process.
type Result struct {
	Rows           []RevenueCostRow
	Cohorts        []CohortRow
	UserRows       []JoinedUserRow
	Unattributed   []UserDailyRevenue
	UnmatchedSpend []CampaignCostSummary
	Stats          RunStats
}
