// Package ingest loads the three input datasets from the configured data
// directory and validates their schemas before any computation runs.
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adquant/adroi/internal/dataset"
)

const (
	AdSpendFile  = "adspend.csv"
	InstallsFile = "installs.csv"
	RevenueFile  = "revenue.csv"
)

// Required columns per dataset. A miss is a fatal SchemaError.
var (
	adspendColumns  = []string{"campaign", "channel", "creative", "cost", "installs", "network_installs", "network_clicks"}
	installsColumns = []string{"userId", "channel", "campaign", "creative", "installedAt"}
	revenueColumns  = []string{"userId", "createdAt", "countryCode", "platform", "amount"}
)

// Tables is one freshly loaded batch.
type Tables struct {
	AdSpend  *dataset.Table
	Installs *dataset.Table
	Revenue  *dataset.Table
}

type Loader struct {
	dir string
	log *slog.Logger
}

func NewLoader(dir string, log *slog.Logger) *Loader {
	return &Loader{dir: dir, log: log}
}

// Load reads and schema-checks all three datasets. Any SchemaError aborts
// the batch before the pipeline sees a single row.
func (l *Loader) Load() (*Tables, error) {
	ad, err := l.load(AdSpendFile, adspendColumns)
	if err != nil {
		return nil, err
	}
	in, err := l.load(InstallsFile, installsColumns)
	if err != nil {
		return nil, err
	}
	rev, err := l.load(RevenueFile, revenueColumns)
	if err != nil {
		return nil, err
	}
	return &Tables{AdSpend: ad, Installs: in, Revenue: rev}, nil
}

func (l *Loader) load(name string, required []string) (*dataset.Table, error) {
	path := filepath.Join(l.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := dataset.ReadCSV(name, f)
	if err != nil {
		return nil, err
	}
	if err := t.Require(required...); err != nil {
		return nil, err
	}
	l.log.Info("dataset loaded", slog.String("dataset", name), slog.Int("rows", len(t.Rows)))
	return t, nil
}
