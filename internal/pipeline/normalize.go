package pipeline

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/adquant/adroi/internal/dataset"
	"github.com/adquant/adroi/internal/models"
)

// Unknown fills empty or missing categorical fields so grouping never
// splits on "" vs absent.
const Unknown = "Unknown"

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeRevenue types the revenue table. Rows with an unparseable
// createdAt or amount are dropped (row-scoped, counted); countryCode and
// platform fall back to the Unknown sentinel.
func NormalizeRevenue(t *dataset.Table, log *slog.Logger) ([]models.RevenueEvent, int) {
	out := make([]models.RevenueEvent, 0, len(t.Rows))
	dropped := 0
	for _, row := range t.Rows {
		ts, err := parseTime(t.Get(row, "createdAt"))
		if err != nil {
			dropped++
			log.Debug("revenue row dropped", slog.String("reason", err.Error()), slog.String("userId", t.Get(row, "userId")))
			continue
		}
		amount, err := parseFloat("amount", t.Get(row, "amount"))
		if err != nil {
			dropped++
			log.Debug("revenue row dropped", slog.String("reason", err.Error()), slog.String("userId", t.Get(row, "userId")))
			continue
		}
		out = append(out, models.RevenueEvent{
			UserID:      t.Get(row, "userId"),
			CreatedAt:   ts,
			Date:        dayUTC(ts),
			CountryCode: orUnknown(t.Get(row, "countryCode")),
			Platform:    orUnknown(t.Get(row, "platform")),
			Amount:      amount,
		})
	}
	return out, dropped
}

// NormalizeInstalls types the installs table and attaches the composite
// key. Rows whose labels defeat the Keyer are dropped and counted; an
// unparseable installedAt keeps the row with a zero date since the
// install join runs on userId alone.
func NormalizeInstalls(t *dataset.Table, keyer Keyer, log *slog.Logger) ([]models.InstallEvent, int) {
	out := make([]models.InstallEvent, 0, len(t.Rows))
	dropped := 0
	for _, row := range t.Rows {
		channel := t.Get(row, "channel")
		campaign := t.Get(row, "campaign")
		creative := t.Get(row, "creative")
		key, err := keyer.Key(channel, campaign, creative)
		if err != nil {
			dropped++
			log.Debug("install row dropped", slog.String("reason", err.Error()), slog.String("userId", t.Get(row, "userId")))
			continue
		}
		installedAt, err := parseTime(t.Get(row, "installedAt"))
		if err != nil {
			log.Debug("install date unparseable, keeping row", slog.String("userId", t.Get(row, "userId")))
			installedAt = time.Time{}
		}
		out = append(out, models.InstallEvent{
			UserID:      t.Get(row, "userId"),
			Channel:     channel,
			Campaign:    campaign,
			Creative:    creative,
			Key:         key,
			InstalledAt: dayUTC(installedAt),
		})
	}
	return out, dropped
}

// NormalizeAdSpend types the ad-spend table with the same Keyer as the
// installs side, so keys stay comparable. Rows with unparseable numbers
// or unkeyable labels are dropped and counted.
func NormalizeAdSpend(t *dataset.Table, keyer Keyer, log *slog.Logger) ([]models.AdSpendRecord, int) {
	out := make([]models.AdSpendRecord, 0, len(t.Rows))
	dropped := 0
	for _, row := range t.Rows {
		channel := t.Get(row, "channel")
		campaign := t.Get(row, "campaign")
		creative := t.Get(row, "creative")
		key, err := keyer.Key(channel, campaign, creative)
		if err != nil {
			dropped++
			log.Debug("adspend row dropped", slog.String("reason", err.Error()), slog.String("campaign", campaign))
			continue
		}
		cost, errCost := parseFloat("cost", t.Get(row, "cost"))
		installs, errInst := parseInt("installs", t.Get(row, "installs"))
		networkInstalls, errNet := parseInt("network_installs", t.Get(row, "network_installs"))
		clicks, errClicks := parseInt("network_clicks", t.Get(row, "network_clicks"))
		if err := firstErr(errCost, errInst, errNet, errClicks); err != nil {
			dropped++
			log.Debug("adspend row dropped", slog.String("reason", err.Error()), slog.String("campaign", campaign))
			continue
		}
		out = append(out, models.AdSpendRecord{
			Campaign:        campaign,
			Channel:         channel,
			Creative:        creative,
			Key:             key,
			Cost:            cost,
			Installs:        installs,
			NetworkInstalls: networkInstalls,
			NetworkClicks:   clicks,
		})
	}
	return out, dropped
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &ParseError{Field: "timestamp", Value: s}
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: s}
	}
	return v, nil
}

func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Field: field, Value: s}
	}
	return v, nil
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

func dayUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
