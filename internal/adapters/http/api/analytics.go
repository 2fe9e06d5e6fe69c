package api

import (
	"context"
	"net/http"

	"github.com/okian/careerlens/internal/domain/analysis"
	"github.com/okian/careerlens/internal/domain/charts"
	"github.com/okian/careerlens/internal/domain/compare"
	"github.com/okian/careerlens/pkg/logger"
)

// AnalyticsDependencies defines the interface for multi-actor analytics.
type AnalyticsDependencies interface {
	CompareActors(ctx context.Context, names []string) (compare.Result, error)
	ProjectCharts(ctx context.Context, names []string) (charts.Bundle, error)
	IndustryInsights(ctx context.Context, names []string) (analysis.Insights, error)
}

// AnalyticsHandler handles comparison, chart and insight requests.
type AnalyticsHandler struct {
	deps AnalyticsDependencies
	log  logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps AnalyticsDependencies, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps, log: log}
}

// HandleCharts handles GET /api/charts-data/{name} requests.
func (h *AnalyticsHandler) HandleCharts(w http.ResponseWriter, r *http.Request) {
	b, err := h.deps.ProjectCharts(r.Context(), []string{r.PathValue("name")})
	if err != nil {
		respond(r.Context(), h.log, w, Wrap("charts data", err))
		return
	}
	reply(r.Context(), h.log, w, b)
}

// HandleCompare handles GET /api/compare-actors?actors=a&actors=b requests.
func (h *AnalyticsHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "compare actors"
	names := actorNames(r)
	if len(names) < 2 {
		respond(r.Context(), h.log, w, WrapKind(op, ErrBadRequest, errTooFewActors))
		return
	}
	res, err := h.deps.CompareActors(r.Context(), names)
	if err != nil {
		respond(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	reply(r.Context(), h.log, w, res)
}

// HandleInsights handles GET /api/insights requests. Without actors the
// trending actors are summarized.
func (h *AnalyticsHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.IndustryInsights(r.Context(), actorNames(r))
	if err != nil {
		respond(r.Context(), h.log, w, Wrap("insights", err))
		return
	}
	reply(r.Context(), h.log, w, res)
}
