package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/okian/careerlens/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestMovieCredit(t *testing.T) {
	convey.Convey("Given movie credits", t, func() {
		dated := model.MovieCredit{Title: "Cast Away", Year: model.IntPtr(2000), Rating: 7.7}
		undated := model.MovieCredit{Title: "Untitled"}

		convey.Convey("Then year helpers reflect presence", func() {
			convey.So(dated.HasYear(), convey.ShouldBeTrue)
			convey.So(dated.YearOrZero(), convey.ShouldEqual, 2000)
			convey.So(undated.HasYear(), convey.ShouldBeFalse)
			convey.So(undated.YearOrZero(), convey.ShouldEqual, 0)
		})
	})
}

func TestActorCareer(t *testing.T) {
	convey.Convey("Given an actor career", t, func() {
		career := &model.ActorCareer{
			Name:    "Tom Hanks",
			Credits: []model.MovieCredit{{Title: "A"}, {Title: "B"}},
		}

		convey.Convey("Then total movies counts credits", func() {
			convey.So(career.TotalMovies(), convey.ShouldEqual, 2)
		})
	})
}

func TestRawPersonSummary(t *testing.T) {
	convey.Convey("Given a raw listing entry", t, func() {
		raw := model.RawPersonSummary{ID: 31, Name: "Tom Hanks", ProfilePath: model.StringPtr("/p.jpg"), Popularity: 85.5}

		convey.Convey("When converting to a summary", func() {
			s := raw.Summary()

			convey.Convey("Then fields carry over", func() {
				convey.So(s.ID, convey.ShouldEqual, 31)
				convey.So(s.Name, convey.ShouldEqual, "Tom Hanks")
				convey.So(*s.ProfileImageRef, convey.ShouldEqual, "/p.jpg")
				convey.So(s.Popularity, convey.ShouldEqual, 85.5)
			})
		})
	})
}

func TestErrors(t *testing.T) {
	convey.Convey("Given wrapped domain errors", t, func() {
		err := fmt.Errorf("analyze %q: %w", "x", model.ErrNoRatingData)

		convey.Convey("Then errors.Is sees the kind", func() {
			convey.So(errors.Is(err, model.ErrNoRatingData), convey.ShouldBeTrue)
			convey.So(errors.Is(err, model.ErrInsufficientData), convey.ShouldBeFalse)
		})
	})
}
