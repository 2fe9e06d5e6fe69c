package model

import "errors"

// Sentinel error kinds shared across the domain. Callers branch with errors.Is.
var (
	ErrNotFound           = errors.New("actor not found")
	ErrInsufficientData   = errors.New("insufficient data")
	ErrNoRatingData       = errors.New("no rating data")
	ErrInsufficientActors = errors.New("at least two actors are required")
)
