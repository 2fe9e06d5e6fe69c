package normalize

import "github.com/okian/careerlens/internal/domain/model"

// GenreEstimator derives an actor's genres from their credits.
type GenreEstimator interface {
	Estimate(credits []model.MovieCredit) []string
}

// PlaceholderGenres returns a fixed list regardless of the credits.
type PlaceholderGenres struct{}

var placeholderGenres = []string{"Drama", "Action", "Comedy"}

// Estimate implements GenreEstimator.
func (PlaceholderGenres) Estimate([]model.MovieCredit) []string {
	out := make([]string, len(placeholderGenres))
	copy(out, placeholderGenres)
	return out
}
