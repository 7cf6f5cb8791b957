package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/kirillkom/documinds/internal/config"
	"github.com/kirillkom/documinds/internal/core/ports"
	"github.com/kirillkom/documinds/internal/core/usecase"
	"github.com/kirillkom/documinds/internal/infrastructure/classifier/remote"
	"github.com/kirillkom/documinds/internal/infrastructure/extractor"
	"github.com/kirillkom/documinds/internal/infrastructure/resilience"
	"github.com/kirillkom/documinds/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/documinds/internal/observability/metrics"
)

const serviceName = "documinds"

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.ClientMetrics

	Workflow ports.ClassificationWorkflow
	Sorter   ports.DocumentSorter

	closeFn func()
}

func New(cfg config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	clientMetrics := metrics.NewClientMetrics(serviceName)

	executor := resilience.NewExecutor(resilience.ClientPolicy(
		cfg.RetryMaxAttempts,
		cfg.RetryInitialBackoff,
		cfg.RetryMaxBackoff,
		cfg.BreakerEnabled,
	), logger)
	classifier := remote.New(cfg.ClassifierURL, remote.Options{
		Timeout:  cfg.ClassifierTimeout,
		Executor: executor,
		Recorder: clientMetrics,
		Logger:   logger,
	})
	storage := localfs.New()

	limit := rate.Inf
	if cfg.SortRatePerSecond > 0 {
		limit = rate.Limit(cfg.SortRatePerSecond)
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  clientMetrics,
		Workflow: usecase.NewSessionUseCase(storage, classifier, cfg.TextExcerptChars),
		Sorter: usecase.NewSortUseCase(
			storage,
			extractor.NewRouter(),
			classifier,
			rate.NewLimiter(limit, 1),
			clientMetrics,
			cfg.SortFallbackCategory,
		),
	}
	app.closeFn = app.startMetricsServer()
	return app
}

// startMetricsServer exposes /metrics when METRICS_ADDR is set and returns its shutdown.
func (a *App) startMetricsServer() func() {
	if a.Config.MetricsAddr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.Metrics.Handler())
	server := &http.Server{
		Addr:              a.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.Logger.Info("metrics_listening", "addr", a.Config.MetricsAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("metrics_server_error", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.Logger.Warn("metrics_shutdown_error", "error", err)
		}
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
