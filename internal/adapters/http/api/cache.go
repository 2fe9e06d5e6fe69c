package api

import (
	"context"
	"net/http"
)

// CacheDependencies defines the interface for cache administration.
type CacheDependencies interface {
	ClearCache(ctx context.Context)
}

// CacheHandler handles cache requests.
type CacheHandler struct {
	deps CacheDependencies
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(deps CacheDependencies) *CacheHandler {
	return &CacheHandler{deps: deps}
}

// HandleClear handles DELETE /api/cache requests.
func (h *CacheHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.deps.ClearCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
