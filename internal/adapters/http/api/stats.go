package api

import (
	"context"
	"net/http"

	"github.com/okian/careerlens/pkg/logger"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats(ctx context.Context) map[string]any
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	log           logger.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, log logger.Logger) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, log: log}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	reply(r.Context(), h.log, w, h.statsProvider.GetStats(r.Context()))
}
