package compare_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/careerlens/internal/domain/analysis"
	"github.com/okian/careerlens/internal/domain/compare"
	"github.com/okian/careerlens/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

var asOf = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// scripted returns canned results per actor name and counts calls.
type scripted struct {
	results map[string]analysis.Result
	errs    map[string]error
	calls   map[string]int
}

func (s *scripted) Analyze(career *model.ActorCareer, _ time.Time) (analysis.Result, error) {
	s.calls[career.Name]++
	if err, ok := s.errs[career.Name]; ok {
		return analysis.Result{}, err
	}
	return s.results[career.Name], nil
}

func named(names ...string) []*model.ActorCareer {
	out := make([]*model.ActorCareer, len(names))
	for i, n := range names {
		out[i] = &model.ActorCareer{Name: n}
	}
	return out
}

func TestCompare(t *testing.T) {
	convey.Convey("Given two analyzed actors", t, func() {
		s := &scripted{
			results: map[string]analysis.Result{
				"A": {CareerScore: 80, AvgRating: 7.1, TotalBoxOffice: 100, CareerLength: model.IntPtr(10)},
				"B": {CareerScore: 65, AvgRating: 7.9, TotalBoxOffice: 900, CareerLength: model.IntPtr(30)},
			},
			calls: map[string]int{},
		}
		engine := compare.New(s)

		res, err := engine.Compare(named("A", "B"), asOf)

		convey.Convey("Then each metric is ranked descending", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Metrics[compare.MetricCareerScore], convey.ShouldResemble, []compare.Entry{{Name: "A", Value: 80}, {Name: "B", Value: 65}})
			convey.So(res.Winners[compare.MetricCareerScore], convey.ShouldEqual, "A")
			convey.So(res.Winners[compare.MetricAvgRating], convey.ShouldEqual, "B")
			convey.So(res.Winners[compare.MetricTotalBoxOffice], convey.ShouldEqual, "B")
			convey.So(res.Winners[compare.MetricCareerLength], convey.ShouldEqual, "B")
		})

		convey.Convey("Then each actor is analyzed exactly once", func() {
			convey.So(s.calls["A"], convey.ShouldEqual, 1)
			convey.So(s.calls["B"], convey.ShouldEqual, 1)
			convey.So(res.Actors, convey.ShouldHaveLength, 2)
			convey.So(res.Actors[0].Analysis.CareerScore, convey.ShouldEqual, 80.0)
		})
	})

	convey.Convey("Given fewer than two actors", t, func() {
		engine := compare.New(analysis.New())

		_, err := engine.Compare(named("Solo"), asOf)

		convey.Convey("Then it reports insufficient actors", func() {
			convey.So(errors.Is(err, model.ErrInsufficientActors), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given an actor whose analysis fails and one with unknown career length", t, func() {
		s := &scripted{
			results: map[string]analysis.Result{
				"A": {CareerScore: 50, AvgRating: 6, CareerLength: nil},
				"C": {CareerScore: 50, AvgRating: 6, CareerLength: model.IntPtr(3)},
			},
			errs:  map[string]error{"B": model.ErrNoRatingData},
			calls: map[string]int{},
		}

		res, err := compare.New(s).Compare(named("A", "B", "C"), asOf)

		convey.Convey("Then failures are reported and excluded from rankings", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(errors.Is(res.Actors[1].Err(), model.ErrNoRatingData), convey.ShouldBeTrue)
			convey.So(res.Actors[1].Error, convey.ShouldNotBeEmpty)
			convey.So(res.Actors[1].Analysis, convey.ShouldBeNil)
			convey.So(res.Metrics[compare.MetricCareerScore], convey.ShouldHaveLength, 2)
		})

		convey.Convey("Then ties keep input order", func() {
			convey.So(res.Winners[compare.MetricCareerScore], convey.ShouldEqual, "A")
			convey.So(res.Metrics[compare.MetricCareerScore][1].Name, convey.ShouldEqual, "C")
		})

		convey.Convey("Then missing career length is excluded rather than zero", func() {
			convey.So(res.Metrics[compare.MetricCareerLength], convey.ShouldResemble, []compare.Entry{{Name: "C", Value: 3}})
		})
	})

	convey.Convey("Given actors that all fail analysis", t, func() {
		s := &scripted{errs: map[string]error{"A": model.ErrInsufficientData, "B": model.ErrInsufficientData}, calls: map[string]int{}}

		res, err := compare.New(s).Compare(named("A", "B"), asOf)

		convey.Convey("Then no metric has a ranking or winner", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Metrics, convey.ShouldBeEmpty)
			convey.So(res.Winners, convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given real careers", t, func() {
		careers := []*model.ActorCareer{
			{Name: "High", CareerStartYear: model.IntPtr(2000), Genres: []string{"a", "b", "c"},
				Credits: []model.MovieCredit{{Title: "x", Year: model.IntPtr(2001), Rating: 9, BoxOfficeMillions: 500}}},
			{Name: "Low", CareerStartYear: model.IntPtr(2010), Genres: []string{"a", "b", "c"},
				Credits: []model.MovieCredit{{Title: "y", Year: model.IntPtr(2011), Rating: 5}}},
		}

		res, err := compare.New(analysis.New()).Compare(careers, asOf)

		convey.Convey("Then the stronger career wins the score", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Winners[compare.MetricCareerScore], convey.ShouldEqual, "High")
		})
	})
}
