package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adquant/adroi/internal/etl"
	"github.com/adquant/adroi/internal/report"
	"github.com/adquant/adroi/internal/utils"
)

func NewRouter(log *slog.Logger, e *etl.ETL, rSvc *report.Service, reg *prometheus.Registry) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.Post("/pipeline/run", func(w http.ResponseWriter, r *http.Request) {
		res, err := e.Run(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 422)
			return
		}
		writeJSON(w, res.Stats)
	})

	mux.Post("/export/run", func(w http.ResponseWriter, r *http.Request) {
		n, err := e.Export(r.Context())
		if err != nil {
			status := 500
			if errors.Is(err, etl.ErrNoResult) {
				status = 409
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, map[string]any{"exported": n})
	})

	mux.Get("/report/rows", func(w http.ResponseWriter, r *http.Request) {
		rows, err := rSvc.QueryRows(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), reportStatus(err))
			return
		}
		writeJSON(w, rows)
	})

	mux.Get("/report/cohorts", func(w http.ResponseWriter, r *http.Request) {
		rows, err := rSvc.QueryCohorts(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), reportStatus(err))
			return
		}
		writeJSON(w, rows)
	})

	mux.Get("/report/summary", func(w http.ResponseWriter, r *http.Request) {
		sum, err := rSvc.Summarize()
		if err != nil {
			http.Error(w, err.Error(), reportStatus(err))
			return
		}
		writeJSON(w, sum)
	})

	return mux
}

func reportStatus(err error) int {
	if errors.Is(err, report.ErrNoResult) {
		return 409
	}
	return 400
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
