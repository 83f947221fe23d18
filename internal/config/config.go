package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type Config struct {
	// DataDir holds adspend.csv, installs.csv and revenue.csv.
	DataDir string `envconfig:"ADROI_DATA_DIR" required:"true"`

	// OutputPath is where the final metric table is written.
	OutputPath string `envconfig:"ADROI_OUTPUT_PATH" default:"revenue_cost.csv"`

	// UserRowsPath, when set, also writes the ungrouped revenue x
	// installs join for downstream visualization.
	UserRowsPath string `envconfig:"ADROI_USER_ROWS_PATH"`

	ExportFormat string `envconfig:"ADROI_EXPORT_FORMAT" default:"csv"`
	Port         string `envconfig:"ADROI_PORT" default:"8080"`
	LogLevel     string `envconfig:"ADROI_LOG_LEVEL" default:"info"`

	// RunOnStart runs the pipeline and export once at boot, for
	// one-shot batch invocations.
	RunOnStart bool `envconfig:"ADROI_RUN_ON_START" default:"false"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	cfg.ExportFormat = strings.ToLower(cfg.ExportFormat)
	if cfg.ExportFormat != FormatCSV && cfg.ExportFormat != FormatXLSX {
		return Config{}, fmt.Errorf("unsupported export format %q", cfg.ExportFormat)
	}
	return cfg, nil
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
