// Package normalize turns raw upstream person records into ActorCareer values.
package normalize

import (
	"context"
	"sort"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

const (
	awardRatingThreshold = 8.0
	maxEstimatedAwards   = 5
	debutAge             = 18
)

// Enricher supplies per-title enrichment. Implementations must not fail:
// on any upstream problem they return a fallback record.
type Enricher interface {
	MovieEnrichment(ctx context.Context, title string, year *int) model.RawEnrichment
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithGenreEstimator replaces the default placeholder estimator.
func WithGenreEstimator(g GenreEstimator) Option {
	return func(n *Normalizer) {
		if g != nil {
			n.genres = g
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.log = l
		}
	}
}

// Normalizer builds ActorCareer values from raw person records.
type Normalizer struct {
	enricher Enricher
	genres   GenreEstimator
	log      logger.Logger
}

// New creates a Normalizer backed by the given enricher.
func New(enricher Enricher, opts ...Option) *Normalizer {
	n := &Normalizer{
		enricher: enricher,
		genres:   PlaceholderGenres{},
		log:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts raw into a career. Only the first MaxCredits source
// positions are considered; entries without a title or release date are
// skipped but still consume a position.
func (n *Normalizer) Normalize(ctx context.Context, raw model.RawPerson) *model.ActorCareer {
	cast := raw.MovieCredits.Cast
	if len(cast) > model.MaxCredits {
		cast = cast[:model.MaxCredits]
	}

	credits := make([]model.MovieCredit, 0, len(cast))
	for _, c := range cast {
		if c.Title == "" || c.ReleaseDate == "" {
			continue
		}
		year := ParseYear(c.ReleaseDate)
		enrichment := n.enricher.MovieEnrichment(ctx, c.Title, year)
		credits = append(credits, model.MovieCredit{
			Title:             c.Title,
			Year:              year,
			Rating:            c.VoteAverage,
			BoxOfficeMillions: ParseBoxOffice(enrichment.BoxOffice),
		})
	}

	birthYear := ParseYear(raw.Birthday)
	career := &model.ActorCareer{
		ID:              raw.ID,
		Name:            raw.Name,
		BirthYear:       birthYear,
		CareerStartYear: careerStart(credits, birthYear),
		EstimatedAwards: estimateAwards(credits),
		Genres:          n.genres.Estimate(credits),
		Biography:       raw.Biography,
		PlaceOfBirth:    raw.PlaceOfBirth,
		ProfileImageRef: raw.ProfilePath,
	}

	sort.SliceStable(credits, func(i, j int) bool {
		return credits[i].YearOrZero() > credits[j].YearOrZero()
	})
	career.Credits = credits

	metrics.RecordCareerNormalized()
	n.log.Debug(ctx, "career normalized",
		logger.String("actor", career.Name),
		logger.Int("source_credits", len(raw.MovieCredits.Cast)),
		logger.Int("credits", len(credits)))
	return career
}

// careerStart is the earliest known credit year, else birth year plus
// debutAge, else nil.
func careerStart(credits []model.MovieCredit, birthYear *int) *int {
	var earliest *int
	for _, c := range credits {
		if c.Year == nil {
			continue
		}
		if earliest == nil || *c.Year < *earliest {
			y := *c.Year
			earliest = &y
		}
	}
	if earliest != nil {
		return earliest
	}
	if birthYear != nil {
		return model.IntPtr(*birthYear + debutAge)
	}
	return nil
}

func estimateAwards(credits []model.MovieCredit) int {
	n := 0
	for _, c := range credits {
		if c.Rating > awardRatingThreshold {
			n++
		}
	}
	return min(n, maxEstimatedAwards)
}
