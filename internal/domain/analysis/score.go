package analysis

import "github.com/okian/careerlens/internal/domain/model"

const maxScore = 100

// Weights controls how the career score components combine. Each component
// is scaled to [0,100] before weighting.
type Weights struct {
	Rating       float64
	BoxOffice    float64
	Longevity    float64
	Productivity float64
	Awards       float64
}

// DefaultWeights are the production score weights.
var DefaultWeights = Weights{
	Rating:       0.4,
	BoxOffice:    0.3,
	Longevity:    0.15,
	Productivity: 0.1,
	Awards:       0.05,
}

// ScoreComponents exposes the scaled inputs to the career score.
type ScoreComponents struct {
	Rating       float64 `json:"rating"`
	BoxOffice    float64 `json:"box_office"`
	Longevity    float64 `json:"longevity"`
	Productivity float64 `json:"productivity"`
	Awards       float64 `json:"awards"`
}

func scoreComponents(career *model.ActorCareer, f facts) ScoreComponents {
	c := ScoreComponents{
		Productivity: clamp(float64(len(career.Credits))*2, 0, maxScore),
		Awards:       clamp(float64(career.EstimatedAwards)*10, 0, maxScore),
	}
	if len(f.ratings) > 0 {
		c.Rating = mean(f.ratings) / 10 * 100
	}
	if len(f.boxOffice) > 0 {
		c.BoxOffice = clamp(sum(f.boxOffice)/50, 0, maxScore)
	}
	// Unknown start year contributes no longevity. A start after asOf counts
	// against the score.
	if f.careerYears != nil {
		c.Longevity = min(float64(*f.careerYears)*3, maxScore)
	}
	return c
}

func (w Weights) score(c ScoreComponents) float64 {
	total := c.Rating*w.Rating +
		c.BoxOffice*w.BoxOffice +
		c.Longevity*w.Longevity +
		c.Productivity*w.Productivity +
		c.Awards*w.Awards
	return min(round(total, 1), maxScore)
}
