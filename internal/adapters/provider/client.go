// Package provider fetches raw person, credit and enrichment records from
// TMDB and OMDB. Every fetch method is total: upstream failures are logged
// and answered with deterministic demo data.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

const (
	upstreamTMDB = "tmdb"
	upstreamOMDB = "omdb"

	defaultTMDBBaseURL       = "https://api.themoviedb.org/3"
	defaultOMDBBaseURL       = "http://www.omdbapi.com"
	defaultRequestsPerSecond = 2
	defaultTimeout           = 10 * time.Second
	defaultRetryAttempts     = 3
	defaultRetryMinWait      = 2 * time.Second
	defaultRetryMaxWait      = 10 * time.Second

	breakerMaxRequests  = 3
	breakerInterval     = time.Minute
	breakerOpenTimeout  = 30 * time.Second
	breakerTripFailures = 5

	maxBodyBytes = 4 << 20
)

// Client talks to TMDB and OMDB.
type Client struct {
	tmdbBaseURL string
	tmdbAPIKey  string
	omdbBaseURL string
	omdbAPIKey  string
	demo        bool

	requestsPerSecond float64
	timeout           time.Duration
	retryAttempts     int
	retryMinWait      time.Duration
	retryMaxWait      time.Duration

	http     *http.Client
	limiter  *rate.Limiter
	breakers map[string]*gobreaker.CircuitBreaker[[]byte]
	log      logger.Logger
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		tmdbBaseURL:       defaultTMDBBaseURL,
		omdbBaseURL:       defaultOMDBBaseURL,
		requestsPerSecond: defaultRequestsPerSecond,
		timeout:           defaultTimeout,
		retryAttempts:     defaultRetryAttempts,
		retryMinWait:      defaultRetryMinWait,
		retryMaxWait:      defaultRetryMaxWait,
		http:              &http.Client{},
		log:               logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.limiter = rate.NewLimiter(rate.Limit(c.requestsPerSecond), 1)
	c.breakers = map[string]*gobreaker.CircuitBreaker[[]byte]{
		upstreamTMDB: c.newBreaker(upstreamTMDB),
		upstreamOMDB: c.newBreaker(upstreamOMDB),
	}
	return c
}

func (c *Client) newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	metrics.UpdateCircuitBreakerState(name, int(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripFailures
		},
		// A rejected request says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn(context.Background(), "circuit breaker state change",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
			metrics.UpdateCircuitBreakerState(name, int(to))
		},
	})
}

// tmdbDemo and omdbDemo report whether an upstream is bypassed.
func (c *Client) tmdbDemo() bool { return c.demo || c.tmdbAPIKey == "" }
func (c *Client) omdbDemo() bool { return c.demo || c.omdbAPIKey == "" }

// get performs a GET through the circuit breaker, the rate limiter and the
// retry policy, returning the response body.
func (c *Client) get(ctx context.Context, upstream, rawURL string, params url.Values) ([]byte, error) {
	u := rawURL
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	body, err := c.breakers[upstream].Execute(func() ([]byte, error) {
		return c.getWithRetry(ctx, upstream, u)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", upstream, err)
	}
	return body, nil
}

func (c *Client) getWithRetry(ctx context.Context, upstream, u string) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryMinWait
	policy.MaxInterval = c.retryMaxWait
	policy.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.retryAttempts-1)), ctx)

	var body []byte
	op := func() error {
		var err error
		body, err = c.do(ctx, upstream, u)
		return err
	}
	notify := func(err error, wait time.Duration) {
		metrics.RecordUpstreamRetry(upstream)
		c.log.Debug(ctx, "retrying upstream request",
			logger.String("upstream", upstream),
			logger.Duration("wait", wait),
			logger.Error(err))
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, err
	}
	return body, nil
}

// do runs one attempt. Client errors are permanent; transport failures and
// server errors are retried.
func (c *Client) do(ctx context.Context, upstream, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordUpstreamRequest(upstream, "transport_error", latency)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		metrics.RecordUpstreamRequest(upstream, "server_error", latency)
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamStatus, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		metrics.RecordUpstreamRequest(upstream, "rejected", latency)
		return nil, backoff.Permanent(fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.RecordUpstreamRequest(upstream, "transport_error", latency)
		return nil, err
	}
	metrics.RecordUpstreamRequest(upstream, "success", latency)
	return body, nil
}

func (c *Client) fallback(ctx context.Context, upstream, call string, err error) {
	metrics.RecordUpstreamFallback(upstream, call)
	metrics.RecordErrorByComponent("provider", upstream+"_"+call)
	c.log.Warn(ctx, "upstream call failed, serving demo data",
		logger.String("upstream", upstream),
		logger.String("call", call),
		logger.Error(err))
}
