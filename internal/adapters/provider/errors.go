package provider

import "errors"

// Sentinel kinds for upstream failures. They never leave this package's
// public fetch methods; callers only see fallback data.
var (
	ErrUpstreamStatus = errors.New("upstream returned server error")
	ErrRejected       = errors.New("upstream rejected request")
	ErrDecode         = errors.New("decode upstream response")
)
