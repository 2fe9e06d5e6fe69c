package provider

import (
	"net/http"
	"time"

	"github.com/okian/careerlens/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTMDB sets the TMDB API root and key. An empty key serves demo data.
func WithTMDB(baseURL, apiKey string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.tmdbBaseURL = baseURL
		}
		c.tmdbAPIKey = apiKey
	}
}

// WithOMDB sets the OMDB API root and key. An empty key serves demo data.
func WithOMDB(baseURL, apiKey string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.omdbBaseURL = baseURL
		}
		c.omdbAPIKey = apiKey
	}
}

// WithDemoData forces demo data for every call.
func WithDemoData(enabled bool) Option {
	return func(c *Client) {
		c.demo = enabled
	}
}

// WithRateLimit caps outbound requests per second across both upstreams.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.requestsPerSecond = perSecond
		}
	}
}

// WithTimeout bounds a single upstream request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetry sets the total attempts and the exponential wait bounds.
func WithRetry(attempts int, minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryAttempts = attempts
		}
		if minWait > 0 {
			c.retryMinWait = minWait
		}
		if maxWait >= c.retryMinWait {
			c.retryMaxWait = maxWait
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}
