package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/pkg/logger"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Causes of bad requests.
var (
	errMissingQuery = errors.New("missing q parameter")
	errTooFewActors = errors.New("at least 2 actors are required")
)

// writeJSON encodes v before touching w, so an encoding failure leaves the
// response unwritten.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return WrapKind("encode response", ErrInternal, err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
	return nil
}

// reply writes v with 200 OK, or an internal error when v cannot be encoded.
func reply(ctx context.Context, log logger.Logger, w http.ResponseWriter, v any) {
	if err := writeJSON(w, http.StatusOK, v); err != nil {
		respond(ctx, log, w, err)
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	_ = writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// respond maps err to a status code and writes it. Server-side failures are
// logged; their details are not exposed.
func respond(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.Error(err))
		writeError(w, status, code, nil)
		return
	}
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, model.ErrInsufficientActors):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, "internal_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// actorNames returns the non-blank repeated "actors" query values.
func actorNames(r *http.Request) []string {
	raw := r.URL.Query()["actors"]
	names := make([]string, 0, len(raw))
	for _, n := range raw {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
