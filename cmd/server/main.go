package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"bitbuzz/internal/config"
	"bitbuzz/internal/handler"
	"bitbuzz/internal/logger"
	"bitbuzz/internal/metrics"
	"bitbuzz/internal/service"
	"bitbuzz/internal/sheet"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	log := logger.Init(cfg.Log)

	backend, err := cfg.OpenBackend()
	if err != nil {
		logger.Error("store.open_failed", "driver", cfg.Store.Driver, "err", err)
		os.Exit(1)
	}
	logger.Info("store.opened", "driver", cfg.Store.Driver)

	m := metrics.New(cfg.Metrics.Enabled, prometheus.DefaultRegisterer)
	store := sheet.NewStore(backend, m)

	deps := handler.Deps{
		Tracker: service.NewTrackerService(store, m),
		Auth:    service.NewAuthService(cfg.Admin),
		Metrics: m,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = promhttp.Handler()
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handler.NewRouter(deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
	logger.Info("server starting", "addr", cfg.Addr(), "metrics", cfg.Metrics.Enabled)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server failed", "err", err)
	}
}
