package report

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adquant/adroi/internal/models"
	"github.com/adquant/adroi/internal/store"
)

func seededStore() *store.MemoryStore {
	st := store.NewMemoryStore()
	st.SetResult(&models.Result{
		Rows: []models.RevenueCostRow{
			{Key: "1-1-1", Channel: "channel 1", Campaign: "campaign 1", Revenue: 8, Cost: 200, AdjustedCost: 4, DailyROI: 2},
			{Key: "1-1-2", Channel: "channel 1", Campaign: "campaign 1", Revenue: 10, Cost: 200, AdjustedCost: 2, DailyROI: 5},
			{Key: "2-2-1", Channel: "channel 2", Campaign: "campaign 2", Revenue: 0, Cost: 50, AdjustedCost: 5, DailyROI: 0},
		},
		Cohorts: []models.CohortRow{
			{Key: "1-1-1", Channel: "channel 1", Campaign: "campaign 1", Installs: 2},
			{Key: "2-2-1", Channel: "channel 2", Campaign: "campaign 2", Installs: 1},
		},
		UnmatchedSpend: []models.CampaignCostSummary{{Campaign: "campaign 9", Cost: 77}},
		Stats:          models.RunStats{RunID: "test-run", OutputRows: 3},
	})
	return st
}

func TestQueryRowsNoResult(t *testing.T) {
	svc := NewService(store.NewMemoryStore())
	_, err := svc.QueryRows(url.Values{})
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestQueryRowsFiltersByChannel(t *testing.T) {
	svc := NewService(seededStore())

	rows, err := svc.QueryRows(url.Values{"channel": {"Channel 1"}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1-1-1", rows[0].Key)
	assert.Equal(t, "1-1-2", rows[1].Key)
}

func TestQueryRowsPagination(t *testing.T) {
	svc := NewService(seededStore())

	rows, err := svc.QueryRows(url.Values{"limit": {"2"}, "offset": {"2"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2-2-1", rows[0].Key)
}

func TestQueryCohorts(t *testing.T) {
	svc := NewService(seededStore())

	rows, err := svc.QueryCohorts(url.Values{"channel": {"channel 2"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2-2-1", rows[0].Key)
}

func TestSummarize(t *testing.T) {
	svc := NewService(seededStore())

	sum, err := svc.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, "test-run", sum.Stats.RunID)
	assert.InDelta(t, 18, sum.TotalRevenue, 1e-9)
	assert.InDelta(t, 11, sum.TotalAdjustedCost, 1e-9)
	// campaign 1 counted once (200) + campaign 2 (50) + unmatched campaign 9 (77)
	assert.InDelta(t, 327, sum.TotalCost, 1e-9)
	assert.InDelta(t, 2.333, sum.DailyROIMean, 1e-3)
	assert.InDelta(t, 2, sum.DailyROIMedian, 1e-9)
	assert.InDelta(t, 0, sum.DailyROIMin, 1e-9)
	assert.InDelta(t, 5, sum.DailyROIMax, 1e-9)
}
