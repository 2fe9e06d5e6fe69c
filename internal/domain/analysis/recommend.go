package analysis

import "github.com/okian/careerlens/internal/domain/model"

// Recommendation texts, in rule priority order.
const (
	RecImproveScripts    = "Focus on script quality and work with acclaimed directors"
	RecDiversifyRoles    = "Maintain high standards while exploring diverse roles"
	RecBiggerProductions = "Consider larger budget productions for broader appeal"
	RecBalanceIndies     = "Balance blockbusters with challenging independent films"
	RecBuildPortfolio    = "Build diverse portfolio across different genres"
	RecMentoring         = "Consider mentoring roles and producing opportunities"
	RecExploreGenres     = "Explore different genres to showcase versatility"

	maxRecommendations = 4
	minGenres          = 3
)

func recommendations(career *model.ActorCareer, f facts) []string {
	recs := make([]string, 0, maxRecommendations)

	if len(f.ratings) > 0 {
		switch avg := mean(f.ratings); {
		case avg < 7.0:
			recs = append(recs, RecImproveScripts)
		case avg > 8.5:
			recs = append(recs, RecDiversifyRoles)
		}
	}

	if len(f.boxOffice) > 0 {
		switch avg := mean(f.boxOffice); {
		case avg < 100:
			recs = append(recs, RecBiggerProductions)
		case avg > 500:
			recs = append(recs, RecBalanceIndies)
		}
	}

	// Career-stage advice needs a known start year.
	if f.careerYears != nil {
		switch y := *f.careerYears; {
		case y < 10:
			recs = append(recs, RecBuildPortfolio)
		case y > 25:
			recs = append(recs, RecMentoring)
		}
	}

	if len(career.Genres) < minGenres {
		recs = append(recs, RecExploreGenres)
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
