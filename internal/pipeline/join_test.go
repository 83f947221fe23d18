package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adquant/adroi/internal/models"
)

func install(user, key string) models.InstallEvent {
	return models.InstallEvent{
		UserID:      user,
		Channel:     "channel 1",
		Campaign:    "campaign 1",
		Creative:    "creative 1",
		Key:         key,
		InstalledAt: day(2024, 1, 1),
	}
}

func TestJoinRevenueInstallsKeepsNonPayingInstalls(t *testing.T) {
	revenue := []models.UserDailyRevenue{
		{UserID: "u1", Date: day(2024, 1, 2), CountryCode: "US", Platform: "ios", TotalRevenue: 8},
	}
	installs := []models.InstallEvent{install("u1", "1-1-1"), install("u2", "1-1-1")}

	out := JoinRevenueInstalls(revenue, installs)
	require.Len(t, out.Rows, 2)
	assert.Empty(t, out.Unattributed)

	byUser := map[string]models.JoinedUserRow{}
	for _, r := range out.Rows {
		byUser[r.UserID] = r
	}
	assert.Equal(t, 8.0, byUser["u1"].Revenue)
	assert.Equal(t, 0.0, byUser["u2"].Revenue)
	assert.Equal(t, Unknown, byUser["u2"].CountryCode)
}

func TestJoinRevenueInstallsRetainsUnattributedRevenue(t *testing.T) {
	revenue := []models.UserDailyRevenue{
		{UserID: "ghost", Date: day(2024, 1, 2), TotalRevenue: 12},
	}
	out := JoinRevenueInstalls(revenue, []models.InstallEvent{install("u1", "1-1-1")})

	require.Len(t, out.Unattributed, 1)
	assert.Equal(t, "ghost", out.Unattributed[0].UserID)
	assert.Equal(t, 12.0, out.Unattributed[0].TotalRevenue)
}

func TestJoinRevenueInstallsOneRowPerRevenueDay(t *testing.T) {
	revenue := []models.UserDailyRevenue{
		{UserID: "u1", Date: day(2024, 1, 1), TotalRevenue: 3},
		{UserID: "u1", Date: day(2024, 1, 2), TotalRevenue: 4},
	}
	out := JoinRevenueInstalls(revenue, []models.InstallEvent{install("u1", "1-1-1")})
	assert.Len(t, out.Rows, 2)
}

func TestGroupCohorts(t *testing.T) {
	rows := []models.JoinedUserRow{
		{UserID: "u1", Key: "1-1-1", Channel: "channel 1", Campaign: "campaign 1", Creative: "creative 1", Date: day(2024, 1, 1), Revenue: 3},
		{UserID: "u1", Key: "1-1-1", Channel: "channel 1", Campaign: "campaign 1", Creative: "creative 1", Date: day(2024, 1, 2), Revenue: 4},
		{UserID: "u2", Key: "1-1-1", Channel: "channel 1", Campaign: "campaign 1", Creative: "creative 1", Date: time.Time{}, Revenue: 0},
		{UserID: "u3", Key: "2-2-2", Channel: "channel 2", Campaign: "campaign 2", Creative: "creative 2", Date: day(2024, 1, 1), Revenue: 9},
	}

	cohorts := GroupCohorts(rows)
	require.Len(t, cohorts, 2)

	first := cohorts[0]
	assert.Equal(t, "1-1-1", first.Key)
	assert.Equal(t, 3, first.Installs) // joined row count, not distinct users
	assert.Equal(t, 2, first.Users)
	assert.Equal(t, 7.0, first.Revenue)
}

func TestJoinCohortsSpendLeftSemantics(t *testing.T) {
	cohorts := []models.CohortRow{
		{Key: "1-1-1", Channel: "channel 1", Campaign: "campaign 1", Creative: "creative 1", Installs: 3, Users: 2, Revenue: 7},
		{Key: "2-2-2", Channel: "channel 2", Campaign: "campaign 2", Creative: "creative 2", Installs: 1, Users: 1, Revenue: 9},
	}
	spend := []models.CampaignCostSummary{
		{Campaign: "campaign 1", Cost: 100, Installs: 10, Clicks: 40},
		{Campaign: "campaign 3", Cost: 55, Installs: 5, Clicks: 20},
	}

	rows, unmatched := JoinCohortsSpend(cohorts, spend)
	require.Len(t, rows, 2)

	assert.Equal(t, 100.0, rows[0].Cost)
	assert.Equal(t, 10, rows[0].CampaignInstalls)
	assert.Equal(t, 40, rows[0].Clicks)

	// cohort without spend survives with zero cost
	assert.Equal(t, 0.0, rows[1].Cost)
	assert.Equal(t, 0, rows[1].CampaignInstalls)

	// spend without cohort is reported, not silently dropped
	require.Len(t, unmatched, 1)
	assert.Equal(t, "campaign 3", unmatched[0].Campaign)
}
