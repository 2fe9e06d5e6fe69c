package analysis

import (
	"math"
	"sort"

	"github.com/okian/careerlens/internal/domain/model"
)

// Shared labels.
const (
	LabelInsufficientData = "Insufficient data"
	LabelUndetermined     = "Undetermined"
	LabelNoData           = "No data available"
)

// Trend labels.
const (
	TrendStronglyUp   = "Strongly Trending Up"
	TrendUp           = "Trending Up"
	TrendStable       = "Stable Performance"
	TrendDown         = "Trending Down"
	TrendStronglyDown = "Strongly Trending Down"
)

// Productivity labels.
const (
	ProductivityVeryHigh = "Very High"
	ProductivityHigh     = "High"
	ProductivityModerate = "Moderate"
	ProductivityLow      = "Low"
	ProductivityVeryLow  = "Very Low"
)

// Consistency labels.
const (
	ConsistencyVery     = "Very Consistent"
	Consistent          = "Consistent"
	ConsistencyModerate = "Moderately Consistent"
	ConsistencyVolatile = "Inconsistent"
)

const (
	minTrendCredits       = 4
	minConsistencyRatings = 3
	strongTrendDelta      = 0.4
	trendDelta            = 0.2
)

// Commercial labels.
const (
	CommercialBlockbuster = "Blockbuster Star"
	CommercialSuccessful  = "Commercially Successful"
	CommercialModerate    = "Moderate Success"
	CommercialLimited     = "Limited Commercial Appeal"
	CommercialIndependent = "Independent/Art House"
)

const maxPeakYears = 3

// trend compares the later half of dated, rated credits against the earlier
// half. Strength is the absolute difference of the two means.
func trend(credits []model.MovieCredit) (string, float64) {
	dated := make([]model.MovieCredit, 0, len(credits))
	for _, c := range credits {
		if c.Year != nil && c.Rating != 0 {
			dated = append(dated, c)
		}
	}
	if len(dated) < minTrendCredits {
		return LabelInsufficientData, 0
	}
	sort.SliceStable(dated, func(i, j int) bool { return *dated[i].Year < *dated[j].Year })

	mid := len(dated) / 2
	earlier := make([]float64, 0, mid)
	recent := make([]float64, 0, len(dated)-mid)
	for i, c := range dated {
		if i < mid {
			earlier = append(earlier, c.Rating)
		} else {
			recent = append(recent, c.Rating)
		}
	}
	diff := mean(recent) - mean(earlier)
	// Rounded so decimal band edges like 7.6-7.2 land on the band.
	d := round(math.Abs(diff), 9)
	strength := round(d, 1)

	switch {
	case d >= strongTrendDelta && diff > 0:
		return TrendStronglyUp, strength
	case d >= strongTrendDelta:
		return TrendStronglyDown, strength
	case d >= trendDelta && diff > 0:
		return TrendUp, strength
	case d >= trendDelta:
		return TrendDown, strength
	default:
		return TrendStable, strength
	}
}

func productivity(creditCount int, careerYears *int) string {
	if careerYears == nil || *careerYears <= 0 {
		return LabelUndetermined
	}
	perYear := float64(creditCount) / float64(*careerYears)
	switch {
	case perYear > 2:
		return ProductivityVeryHigh
	case perYear > 1.5:
		return ProductivityHigh
	case perYear > 1:
		return ProductivityModerate
	case perYear > 0.5:
		return ProductivityLow
	default:
		return ProductivityVeryLow
	}
}

func consistency(ratings []float64) string {
	if len(ratings) < minConsistencyRatings {
		return LabelInsufficientData
	}
	sd := sampleStdev(ratings)
	switch {
	case sd < 0.5:
		return ConsistencyVery
	case sd < 1.0:
		return Consistent
	case sd < 1.5:
		return ConsistencyModerate
	default:
		return ConsistencyVolatile
	}
}

func commercial(boxOffice []float64) string {
	if len(boxOffice) == 0 {
		return LabelNoData
	}
	avg := mean(boxOffice)
	switch {
	case avg > 500:
		return CommercialBlockbuster
	case avg > 200:
		return CommercialSuccessful
	case avg > 100:
		return CommercialModerate
	case avg > 50:
		return CommercialLimited
	default:
		return CommercialIndependent
	}
}

// peakYears averages ratings per year in first-seen order and returns the
// best years, ties keeping that order.
func peakYears(credits []model.MovieCredit) []int {
	type bucket struct {
		year    int
		ratings []float64
	}
	var buckets []*bucket
	index := make(map[int]*bucket)
	for _, c := range credits {
		if c.Year == nil || c.Rating == 0 {
			continue
		}
		b, ok := index[*c.Year]
		if !ok {
			b = &bucket{year: *c.Year}
			index[*c.Year] = b
			buckets = append(buckets, b)
		}
		b.ratings = append(b.ratings, c.Rating)
	}

	averages := make([]float64, len(buckets))
	for i, b := range buckets {
		averages[i] = mean(b.ratings)
	}
	order := make([]int, len(buckets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return averages[order[i]] > averages[order[j]] })

	years := make([]int, 0, maxPeakYears)
	for _, i := range order {
		if len(years) == maxPeakYears {
			break
		}
		years = append(years, buckets[i].year)
	}
	return years
}
