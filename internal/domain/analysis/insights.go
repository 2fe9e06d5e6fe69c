package analysis

import (
	"time"

	"github.com/okian/careerlens/internal/domain/model"
)

// RatingBenchmarks are the fixed rating reference points.
type RatingBenchmarks struct {
	Excellent float64 `json:"excellent"`
	Good      float64 `json:"good"`
	Average   float64 `json:"average"`
	Poor      float64 `json:"poor"`
}

// BoxOfficeBenchmarks are the fixed box office reference points, in millions.
type BoxOfficeBenchmarks struct {
	Blockbuster float64 `json:"blockbuster"`
	Successful  float64 `json:"successful"`
	Moderate    float64 `json:"moderate"`
	Limited     float64 `json:"limited"`
}

// Insights aggregates statistics over a set of careers. Pointer fields are
// nil when no career contributed data.
type Insights struct {
	ActorCount           int                  `json:"actor_count"`
	IndustryAvgRating    *float64             `json:"industry_avg_rating,omitempty"`
	RatingBenchmark      *RatingBenchmarks    `json:"rating_benchmark,omitempty"`
	IndustryAvgBoxOffice *float64             `json:"industry_avg_box_office,omitempty"`
	BoxOfficeBenchmarks  *BoxOfficeBenchmarks `json:"box_office_benchmarks,omitempty"`
	AvgCareerLength      *float64             `json:"avg_career_length,omitempty"`
}

var (
	defaultRatingBenchmarks    = RatingBenchmarks{Excellent: 8.5, Good: 7.5, Average: 6.5, Poor: 5.5}
	defaultBoxOfficeBenchmarks = BoxOfficeBenchmarks{Blockbuster: 500, Successful: 200, Moderate: 100, Limited: 50}
)

// Insights summarizes careers as of the given date. Careers with an unknown
// start year are left out of the career length average.
func (a *Analyzer) Insights(careers []*model.ActorCareer, asOf time.Time) Insights {
	var ratings, boxOffice, lengths []float64
	out := Insights{}
	for _, career := range careers {
		if career == nil {
			continue
		}
		out.ActorCount++
		f := collect(career, asOf)
		ratings = append(ratings, f.ratings...)
		boxOffice = append(boxOffice, f.boxOffice...)
		if f.careerYears != nil {
			lengths = append(lengths, float64(*f.careerYears))
		}
	}

	if len(ratings) > 0 {
		v := round(mean(ratings), 2)
		b := defaultRatingBenchmarks
		out.IndustryAvgRating, out.RatingBenchmark = &v, &b
	}
	if len(boxOffice) > 0 {
		v := round(mean(boxOffice), 1)
		b := defaultBoxOfficeBenchmarks
		out.IndustryAvgBoxOffice, out.BoxOfficeBenchmarks = &v, &b
	}
	if len(lengths) > 0 {
		v := round(mean(lengths), 1)
		out.AvgCareerLength = &v
	}
	return out
}
