// Package analysis computes career analytics from normalized actor careers.
package analysis

import (
	"fmt"
	"time"

	"github.com/okian/careerlens/internal/domain/model"
)

// Result is the derived analysis of one career. It is recomputed on every
// call and never cached.
type Result struct {
	// CareerLength is nil when the career start year is unknown.
	CareerLength      *int               `json:"career_length"`
	TotalMovies       int                `json:"total_movies"`
	AvgRating         float64            `json:"avg_rating"`
	RatingStdDev      float64            `json:"rating_std"`
	TotalBoxOffice    float64            `json:"total_box_office"`
	AvgBoxOffice      float64            `json:"avg_box_office"`
	BestMovie         *model.MovieCredit `json:"best_movie"`
	HighestGrossing   *model.MovieCredit `json:"highest_grossing"`
	CareerScore       float64            `json:"career_score"`
	ScoreComponents   ScoreComponents    `json:"score_components"`
	PerformanceTrend  string             `json:"performance_trend"`
	TrendStrength     float64            `json:"trend_strength"`
	Productivity      string             `json:"productivity"`
	Consistency       string             `json:"consistency"`
	CommercialSuccess string             `json:"commercial_success"`
	PeakYears         []int              `json:"peak_years"`
	Recommendations   []string           `json:"recommendations"`
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithWeights overrides the career score weights.
func WithWeights(w Weights) Option {
	return func(a *Analyzer) {
		a.weights = w
	}
}

// Analyzer computes Result values. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	weights Weights
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{weights: DefaultWeights}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// facts are the per-career series every metric draws from.
type facts struct {
	ratings     []float64 // positive ratings
	boxOffice   []float64 // positive box office
	careerYears *int
}

func collect(career *model.ActorCareer, asOf time.Time) facts {
	f := facts{
		ratings:   make([]float64, 0, len(career.Credits)),
		boxOffice: make([]float64, 0, len(career.Credits)),
	}
	for _, c := range career.Credits {
		if c.Rating > 0 {
			f.ratings = append(f.ratings, c.Rating)
		}
		if c.BoxOfficeMillions > 0 {
			f.boxOffice = append(f.boxOffice, c.BoxOfficeMillions)
		}
	}
	f.careerYears = careerYears(career, asOf)
	return f
}

func careerYears(career *model.ActorCareer, asOf time.Time) *int {
	if career.CareerStartYear == nil {
		return nil
	}
	return model.IntPtr(asOf.Year() - *career.CareerStartYear)
}

// Analyze derives the analysis of career as of the given date. It returns
// model.ErrInsufficientData when there are no credits and
// model.ErrNoRatingData when no credit has a positive rating.
func (a *Analyzer) Analyze(career *model.ActorCareer, asOf time.Time) (Result, error) {
	if career == nil || len(career.Credits) == 0 {
		return Result{}, fmt.Errorf("analyze: %w", model.ErrInsufficientData)
	}
	f := collect(career, asOf)
	if len(f.ratings) == 0 {
		return Result{}, fmt.Errorf("analyze %q: %w", career.Name, model.ErrNoRatingData)
	}

	components := scoreComponents(career, f)
	trendLabel, strength := trend(career.Credits)

	res := Result{
		CareerLength:      f.careerYears,
		TotalMovies:       len(career.Credits),
		AvgRating:         round(mean(f.ratings), 2),
		RatingStdDev:      round(sampleStdev(f.ratings), 2),
		TotalBoxOffice:    sum(f.boxOffice),
		BestMovie:         bestRated(career.Credits),
		CareerScore:       a.weights.score(components),
		ScoreComponents:   components,
		PerformanceTrend:  trendLabel,
		TrendStrength:     strength,
		Productivity:      productivity(len(career.Credits), f.careerYears),
		Consistency:       consistency(f.ratings),
		CommercialSuccess: commercial(f.boxOffice),
		PeakYears:         peakYears(career.Credits),
		Recommendations:   recommendations(career, f),
	}
	if len(f.boxOffice) > 0 {
		res.AvgBoxOffice = round(mean(f.boxOffice), 1)
		res.HighestGrossing = highestGrossing(career.Credits)
	}
	return res, nil
}

// bestRated returns a copy of the first credit with the highest rating.
func bestRated(credits []model.MovieCredit) *model.MovieCredit {
	best := 0
	for i, c := range credits {
		if c.Rating > credits[best].Rating {
			best = i
		}
	}
	c := credits[best]
	return &c
}

func highestGrossing(credits []model.MovieCredit) *model.MovieCredit {
	best := 0
	for i, c := range credits {
		if c.BoxOfficeMillions > credits[best].BoxOfficeMillions {
			best = i
		}
	}
	c := credits[best]
	return &c
}
