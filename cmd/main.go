package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/careerlens/internal/adapters/http/api"
	"github.com/okian/careerlens/internal/adapters/http/swagger"
	"github.com/okian/careerlens/internal/adapters/provider"
	"github.com/okian/careerlens/internal/adapters/repository"
	app "github.com/okian/careerlens/internal/app"
	"github.com/okian/careerlens/internal/config"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

// HTTP server timeout constants. A write covers a full career load.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 60 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	loggerInstance := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Configure(metricsOptions(cfg)...)
	go startSystemMetricsUpdater(ctx, metrics.RefreshInterval())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, loggerInstance),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Bool("demo", cfg.DemoMode()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// metricsOptions maps the metrics section of the configuration.
func metricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithRefreshInterval(cfg.MetricsRefresh()),
		metrics.WithHistogramBuckets(cfg.MetricsLatencyBuckets),
		metrics.WithCustomLabels(cfg.MetricsLabels),
	}
}

// newFetcher builds the upstream client from configuration.
func newFetcher(cfg *config.Config, log logger.Logger) *provider.Client {
	return provider.New(
		provider.WithTMDB(cfg.TMDBBaseURL, cfg.TMDBAPIKey),
		provider.WithOMDB(cfg.OMDBBaseURL, cfg.OMDBAPIKey),
		provider.WithDemoData(cfg.DemoMode()),
		provider.WithRateLimit(cfg.RequestsPerSecond),
		provider.WithTimeout(cfg.RequestTimeout()),
		provider.WithRetry(cfg.RetryMaxAttempts, cfg.RetryMinWait(), cfg.RetryMaxWait()),
		provider.WithLogger(log.Named("provider")),
	)
}

// newHandler wires the service and every route onto a fresh mux.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) http.Handler {
	svc := app.New(ctx, newFetcher(cfg, log),
		app.WithStore(repository.NewMemoryStore(ctx)),
		app.WithLogger(log.Named("service")),
	)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, log.Named("api")).Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater refreshes system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
