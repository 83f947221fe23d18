package export

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/adquant/adroi/internal/config"
	"github.com/adquant/adroi/internal/models"
)

type Exporter struct {
	cfg config.Config
	log *slog.Logger
}

func NewExporter(cfg config.Config, log *slog.Logger) *Exporter {
	return &Exporter{cfg: cfg, log: log}
}

// Export writes the final table to the configured path (csv or xlsx)
// and, when a user-rows path is configured, the row-level secondary
// output. Returns the number of primary rows written.
func (e *Exporter) Export(res *models.Result) (int, error) {
	switch e.cfg.ExportFormat {
	case config.FormatXLSX:
		if err := WriteRevenueCostXLSX(e.cfg.OutputPath, res.Rows); err != nil {
			return 0, err
		}
	default:
		if err := writeCSVFile(e.cfg.OutputPath, func(f *os.File) error {
			return WriteRevenueCostCSV(f, res.Rows)
		}); err != nil {
			return 0, err
		}
	}
	e.log.Info("report exported",
		slog.String("path", e.cfg.OutputPath),
		slog.String("format", e.cfg.ExportFormat),
		slog.Int("rows", len(res.Rows)))

	if e.cfg.UserRowsPath != "" {
		if err := writeCSVFile(e.cfg.UserRowsPath, func(f *os.File) error {
			return WriteUserRowsCSV(f, res.UserRows)
		}); err != nil {
			return 0, err
		}
		e.log.Info("user-level join exported",
			slog.String("path", e.cfg.UserRowsPath),
			slog.Int("rows", len(res.UserRows)))
	}
	return len(res.Rows), nil
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
