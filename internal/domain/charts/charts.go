// Package charts projects careers into chart-ready series.
package charts

import (
	"sort"
	"time"

	"github.com/okian/careerlens/internal/domain/analysis"
	"github.com/okian/careerlens/internal/domain/model"
)

const defaultLabelScore = 30

var productivityScores = map[string]float64{
	analysis.ProductivityVeryHigh: 100,
	analysis.ProductivityHigh:     80,
	analysis.ProductivityModerate: 60,
	analysis.ProductivityLow:      40,
	analysis.ProductivityVeryLow:  20,
}

var consistencyScores = map[string]float64{
	analysis.ConsistencyVery:     100,
	analysis.Consistent:          80,
	analysis.ConsistencyModerate: 60,
	analysis.ConsistencyVolatile: 30,
}

// ProgressionPoint is one credit on an actor's timeline.
type ProgressionPoint struct {
	Year      int     `json:"year"`
	Rating    float64 `json:"rating"`
	Title     string  `json:"title"`
	BoxOffice float64 `json:"box_office"`
}

// Progression is an actor's chronological rating timeline.
type Progression struct {
	Name   string             `json:"name"`
	Points []ProgressionPoint `json:"points"`
}

// BoxOfficeSummary totals an actor's box office.
type BoxOfficeSummary struct {
	Name           string  `json:"name"`
	TotalBoxOffice float64 `json:"total_box_office"`
	AvgBoxOffice   float64 `json:"avg_box_office"`
}

// RatingPoint is one rated credit in the flat distribution.
type RatingPoint struct {
	Actor  string  `json:"actor"`
	Movie  string  `json:"movie"`
	Rating float64 `json:"rating"`
	Year   *int    `json:"year"`
}

// RadarVector is an actor's radar chart profile, each axis in [0,100].
type RadarVector struct {
	Name              string  `json:"name"`
	CareerScore       float64 `json:"career_score"`
	AvgRating         float64 `json:"avg_rating"`
	CommercialSuccess float64 `json:"commercial_success"`
	Productivity      float64 `json:"productivity"`
	Consistency       float64 `json:"consistency"`
}

// Bundle holds the four independent chart series.
type Bundle struct {
	Progressions       []Progression      `json:"progressions"`
	BoxOffice          []BoxOfficeSummary `json:"box_office_comparison"`
	RatingDistribution []RatingPoint      `json:"rating_distribution"`
	CareerMetrics      []RadarVector      `json:"career_metrics"`
}

// Analyzer is the analysis capability the projector needs.
type Analyzer interface {
	Analyze(career *model.ActorCareer, asOf time.Time) (analysis.Result, error)
}

// Projector builds chart bundles.
type Projector struct {
	analyzer Analyzer
}

// New creates a Projector.
func New(analyzer Analyzer) *Projector {
	return &Projector{analyzer: analyzer}
}

// Project builds every series for careers. Nil careers are skipped.
func (p *Projector) Project(careers []*model.ActorCareer, asOf time.Time) Bundle {
	b := Bundle{
		Progressions:       make([]Progression, 0, len(careers)),
		BoxOffice:          make([]BoxOfficeSummary, 0, len(careers)),
		RatingDistribution: []RatingPoint{},
		CareerMetrics:      make([]RadarVector, 0, len(careers)),
	}
	for _, c := range careers {
		if c == nil {
			continue
		}
		if len(c.Credits) > 0 {
			b.Progressions = append(b.Progressions, progression(c))
		}
		b.BoxOffice = append(b.BoxOffice, boxOffice(c))
		b.RatingDistribution = append(b.RatingDistribution, ratingPoints(c)...)
		if r, err := p.analyzer.Analyze(c, asOf); err == nil {
			b.CareerMetrics = append(b.CareerMetrics, radar(c.Name, r))
		}
	}
	return b
}

func progression(c *model.ActorCareer) Progression {
	points := make([]ProgressionPoint, 0, len(c.Credits))
	for _, m := range c.Credits {
		if m.Year == nil || m.Rating == 0 {
			continue
		}
		points = append(points, ProgressionPoint{
			Year:      *m.Year,
			Rating:    m.Rating,
			Title:     m.Title,
			BoxOffice: m.BoxOfficeMillions,
		})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return Progression{Name: c.Name, Points: points}
}

// boxOffice averages over every credit, not only the grossing ones.
func boxOffice(c *model.ActorCareer) BoxOfficeSummary {
	s := BoxOfficeSummary{Name: c.Name}
	for _, m := range c.Credits {
		if m.BoxOfficeMillions > 0 {
			s.TotalBoxOffice += m.BoxOfficeMillions
		}
	}
	if n := len(c.Credits); n > 0 {
		s.AvgBoxOffice = s.TotalBoxOffice / float64(n)
	}
	return s
}

func ratingPoints(c *model.ActorCareer) []RatingPoint {
	var out []RatingPoint
	for _, m := range c.Credits {
		if m.Rating > 0 {
			out = append(out, RatingPoint{Actor: c.Name, Movie: m.Title, Rating: m.Rating, Year: m.Year})
		}
	}
	return out
}

func radar(name string, r analysis.Result) RadarVector {
	return RadarVector{
		Name:              name,
		CareerScore:       r.CareerScore,
		AvgRating:         r.AvgRating * 10,
		CommercialSuccess: min(r.TotalBoxOffice/50, 100),
		Productivity:      labelScore(productivityScores, r.Productivity),
		Consistency:       labelScore(consistencyScores, r.Consistency),
	}
}

func labelScore(scores map[string]float64, label string) float64 {
	if s, ok := scores[label]; ok {
		return s
	}
	return defaultLabelScore
}
