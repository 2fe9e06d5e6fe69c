// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig; loader failures wrap ErrLoadConfig.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// TMDBAPIKey authenticates people, credits and popularity lookups.
	TMDBAPIKey string `koanf:"tmdb_api_key"`

	// TMDBBaseURL is the TMDB v3 API root.
	TMDBBaseURL string `koanf:"tmdb_base_url"`

	// OMDBAPIKey authenticates box-office enrichment lookups.
	OMDBAPIKey string `koanf:"omdb_api_key"`

	// OMDBBaseURL is the OMDB API root.
	OMDBBaseURL string `koanf:"omdb_base_url"`

	// RequestsPerSecond limits outbound upstream calls.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// RequestTimeoutMS bounds a single upstream request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// RetryMaxAttempts is the total number of tries per upstream call.
	RetryMaxAttempts int `koanf:"retry_max_attempts"`

	// RetryMinWaitMS and RetryMaxWaitMS bound the exponential retry delay.
	RetryMinWaitMS int `koanf:"retry_min_wait_ms"`
	RetryMaxWaitMS int `koanf:"retry_max_wait_ms"`

	// UseDemoData forces the provider to serve the built-in demo catalogue.
	UseDemoData bool `koanf:"use_demo_data"`

	// MetricsEnabled turns metric recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsRefreshMS is how often system gauges are sampled.
	MetricsRefreshMS int `koanf:"metrics_refresh_ms"`

	// MetricsLatencyBuckets overrides the HTTP and upstream latency buckets.
	MetricsLatencyBuckets []float64 `koanf:"metrics_latency_buckets"`

	// MetricsLabels are constant labels attached to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		TMDBBaseURL:       "https://api.themoviedb.org/3",
		OMDBBaseURL:       "http://www.omdbapi.com",
		RequestsPerSecond: 2,
		RequestTimeoutMS:  10_000,
		RetryMaxAttempts:  3,
		RetryMinWaitMS:    2_000,
		RetryMaxWaitMS:    10_000,
		MetricsEnabled:    true,
		MetricsNamespace:  "careerlens",
		MetricsSubsystem:  "engine",
		MetricsRefreshMS:  10_000,
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// RetryMinWait returns RetryMinWaitMS as a duration.
func (c *Config) RetryMinWait() time.Duration {
	return time.Duration(c.RetryMinWaitMS) * time.Millisecond
}

// RetryMaxWait returns RetryMaxWaitMS as a duration.
func (c *Config) RetryMaxWait() time.Duration {
	return time.Duration(c.RetryMaxWaitMS) * time.Millisecond
}

// MetricsRefresh returns MetricsRefreshMS as a duration.
func (c *Config) MetricsRefresh() time.Duration {
	return time.Duration(c.MetricsRefreshMS) * time.Millisecond
}

// DemoMode reports whether upstream calls should be skipped entirely, either
// because it was requested or because no API keys are configured.
func (c *Config) DemoMode() bool {
	return c.UseDemoData || (c.TMDBAPIKey == "" && c.OMDBAPIKey == "")
}
