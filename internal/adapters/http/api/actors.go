package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/careerlens/internal/domain/analysis"
	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/pkg/logger"
)

// ActorDependencies defines the interface for actor lookups.
type ActorDependencies interface {
	SearchActors(ctx context.Context, query string) ([]model.ActorSummary, error)
	GetActorCareer(ctx context.Context, name string) (*model.ActorCareer, error)
	GetPopularActors(ctx context.Context) ([]model.ActorSummary, error)
	GetTrendingActors(ctx context.Context) ([]model.ActorSummary, error)
	AnalyzeCareer(ctx context.Context, career *model.ActorCareer) (analysis.Result, error)
}

// careerResponse is a career with its analysis inlined. When the career
// cannot be analyzed, AnalysisError says why.
type careerResponse struct {
	*model.ActorCareer
	Analysis      *analysis.Result `json:"analysis,omitempty"`
	AnalysisError string           `json:"analysis_error,omitempty"`
}

// ActorHandler handles actor requests.
type ActorHandler struct {
	deps ActorDependencies
	log  logger.Logger
}

// NewActorHandler creates a new actor handler.
func NewActorHandler(deps ActorDependencies, log logger.Logger) *ActorHandler {
	return &ActorHandler{deps: deps, log: log}
}

// HandleSearch handles GET /api/search-actor?q= requests.
func (h *ActorHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "search actor"
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respond(r.Context(), h.log, w, WrapKind(op, ErrBadRequest, errMissingQuery))
		return
	}
	res, err := h.deps.SearchActors(r.Context(), q)
	if err != nil {
		respond(r.Context(), h.log, w, Wrap(op, err))
		return
	}
	reply(r.Context(), h.log, w, res)
}

// HandleGetActor handles GET /api/actor/{name} requests.
func (h *ActorHandler) HandleGetActor(w http.ResponseWriter, r *http.Request) {
	const op = "get actor"
	ctx := r.Context()
	career, err := h.deps.GetActorCareer(ctx, r.PathValue("name"))
	if err != nil {
		respond(ctx, h.log, w, Wrap(op, err))
		return
	}

	resp := careerResponse{ActorCareer: career}
	res, err := h.deps.AnalyzeCareer(ctx, career)
	if err != nil {
		resp.AnalysisError = err.Error()
	} else {
		resp.Analysis = &res
	}
	reply(ctx, h.log, w, resp)
}

// HandlePopular handles GET /api/popular-actors requests.
func (h *ActorHandler) HandlePopular(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.GetPopularActors(r.Context())
	if err != nil {
		respond(r.Context(), h.log, w, Wrap("popular actors", err))
		return
	}
	reply(r.Context(), h.log, w, res)
}

// HandleTrending handles GET /api/trending-actors requests.
func (h *ActorHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.GetTrendingActors(r.Context())
	if err != nil {
		respond(r.Context(), h.log, w, Wrap("trending actors", err))
		return
	}
	reply(r.Context(), h.log, w, res)
}
