package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/adquant/adroi/internal/config"
	"github.com/adquant/adroi/internal/etl"
	"github.com/adquant/adroi/internal/export"
	"github.com/adquant/adroi/internal/httpx"
	"github.com/adquant/adroi/internal/ingest"
	"github.com/adquant/adroi/internal/metrics"
	"github.com/adquant/adroi/internal/pipeline"
	"github.com/adquant/adroi/internal/report"
	"github.com/adquant/adroi/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, relying on environment")
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	met := metrics.NewPipelineMetrics(reg)

	loader := ingest.NewLoader(cfg.DataDir, logger)
	pipe := pipeline.New(pipeline.SuffixKeyer{}, logger, met)
	st := store.NewMemoryStore()
	exporter := export.NewExporter(cfg, logger)
	e := etl.New(loader, pipe, st, exporter, logger, met)
	rSvc := report.NewService(st)

	if cfg.RunOnStart {
		ctx := context.Background()
		if _, err := e.Run(ctx); err != nil {
			logger.Error("startup run failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		if _, err := e.Export(ctx); err != nil {
			logger.Error("startup export failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}

	r := httpx.NewRouter(logger, e, rSvc, reg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
