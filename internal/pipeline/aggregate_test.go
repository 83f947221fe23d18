package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adquant/adroi/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateRevenueGroupsPerUserDay(t *testing.T) {
	events := []models.RevenueEvent{
		{UserID: "u1", Date: day(2024, 1, 1), CountryCode: "US", Platform: "ios", Amount: 5},
		{UserID: "u1", Date: day(2024, 1, 1), CountryCode: "US", Platform: "ios", Amount: 3},
		{UserID: "u1", Date: day(2024, 1, 2), CountryCode: "US", Platform: "ios", Amount: 2},
		{UserID: "u2", Date: day(2024, 1, 1), CountryCode: "DE", Platform: "android", Amount: 7},
	}

	out := AggregateRevenue(events)
	require.Len(t, out, 3)
	assert.Equal(t, 8.0, out[0].TotalRevenue)
	assert.Equal(t, 2.0, out[1].TotalRevenue)
	assert.Equal(t, 7.0, out[2].TotalRevenue)
}

func TestAggregateRevenueConservation(t *testing.T) {
	events := []models.RevenueEvent{
		{UserID: "u1", Date: day(2024, 3, 1), CountryCode: "US", Platform: "ios", Amount: 1.25},
		{UserID: "u1", Date: day(2024, 3, 1), CountryCode: "US", Platform: "ios", Amount: 0.75},
		{UserID: "u2", Date: day(2024, 3, 1), CountryCode: "US", Platform: "ios", Amount: 4},
		{UserID: "u3", Date: day(2024, 3, 2), CountryCode: "FR", Platform: "android", Amount: 10},
	}
	var in float64
	for _, e := range events {
		in += e.Amount
	}

	var out float64
	for _, r := range AggregateRevenue(events) {
		out += r.TotalRevenue
	}
	assert.InDelta(t, in, out, 1e-9)
}

func TestAggregateRevenueSplitsOnCountryAndPlatform(t *testing.T) {
	events := []models.RevenueEvent{
		{UserID: "u1", Date: day(2024, 1, 1), CountryCode: "US", Platform: "ios", Amount: 1},
		{UserID: "u1", Date: day(2024, 1, 1), CountryCode: "US", Platform: "android", Amount: 2},
	}
	out := AggregateRevenue(events)
	assert.Len(t, out, 2)
}

func TestAggregateAdSpendReconcilesInstalls(t *testing.T) {
	records := []models.AdSpendRecord{
		{Campaign: "campaign 1", Cost: 60, Installs: 10, NetworkInstalls: 12, NetworkClicks: 100},
		{Campaign: "campaign 1", Cost: 40, Installs: 20, NetworkInstalls: 15, NetworkClicks: 50},
		{Campaign: "campaign 2", Cost: 30, Installs: 5, NetworkInstalls: 5, NetworkClicks: 25},
	}

	out := AggregateAdSpend(records)
	require.Len(t, out, 2)
	assert.Equal(t, "campaign 1", out[0].Campaign)
	assert.Equal(t, 100.0, out[0].Cost)
	// max(12,10) + max(15,20) = 12 + 20
	assert.Equal(t, 32, out[0].Installs)
	assert.Equal(t, 150, out[0].Clicks)
	assert.Equal(t, 5, out[1].Installs)
}
