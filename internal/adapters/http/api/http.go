// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/careerlens/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ActorDependencies
	AnalyticsDependencies
	CacheDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	actorHandler     *ActorHandler
	analyticsHandler *AnalyticsHandler
	cacheHandler     *CacheHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps, log),
		actorHandler:     NewActorHandler(deps, log),
		analyticsHandler: NewAnalyticsHandler(deps, log),
		cacheHandler:     NewCacheHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(RequestID(h), endpoint))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	route("GET /api/search-actor", "search_actor", s.actorHandler.HandleSearch)
	route("GET /api/actor/{name}", "actor", s.actorHandler.HandleGetActor)
	route("GET /api/popular-actors", "popular_actors", s.actorHandler.HandlePopular)
	route("GET /api/trending-actors", "trending_actors", s.actorHandler.HandleTrending)

	route("GET /api/charts-data/{name}", "charts_data", s.analyticsHandler.HandleCharts)
	route("GET /api/compare-actors", "compare_actors", s.analyticsHandler.HandleCompare)
	route("GET /api/insights", "insights", s.analyticsHandler.HandleInsights)

	route("DELETE /api/cache", "cache", s.cacheHandler.HandleClear)
}
