// Package export writes the pipeline output tables to disk as CSV or
// XLSX. Rows arrive already sorted, and floats are formatted with the
// shortest exact representation, so identical inputs produce
// byte-identical files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/adquant/adroi/internal/models"
)

var revenueCostHeader = []string{
	"key", "channel", "campaign", "creative",
	"installs_x", "installs_y", "users",
	"revenue", "cost", "clicks", "adjusted_cost",
	"daily_roi", "roi", "days_to_payoff", "imputed",
}

// WriteRevenueCostCSV writes the final metric table.
func WriteRevenueCostCSV(w io.Writer, rows []models.RevenueCostRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(revenueCostHeader); err != nil {
		return err
	}
	for _, r := range rows {
		payoff := ""
		if r.DaysToPayoff != nil {
			payoff = ftoa(*r.DaysToPayoff)
		}
		rec := []string{
			r.Key, r.Channel, r.Campaign, r.Creative,
			itoa(r.Installs), itoa(r.CampaignInstalls), itoa(r.Users),
			ftoa(r.Revenue), ftoa(r.Cost), itoa(r.Clicks), ftoa(r.AdjustedCost),
			ftoa(r.DailyROI), ftoa(r.AnnualROI), payoff, strconv.FormatBool(r.Imputed),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var userRowsHeader = []string{
	"userId", "key", "channel", "campaign", "creative",
	"date", "countryCode", "platform", "revenue",
}

// WriteUserRowsCSV writes the ungrouped revenue x installs join, the
// optional secondary output for visualization.
func WriteUserRowsCSV(w io.Writer, rows []models.JoinedUserRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(userRowsHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.UserID, r.Key, r.Channel, r.Campaign, r.Creative,
			dateStr(r.Date), r.CountryCode, r.Platform, ftoa(r.Revenue),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
func itoa(i int) string     { return strconv.Itoa(i) }

func dateStr(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
