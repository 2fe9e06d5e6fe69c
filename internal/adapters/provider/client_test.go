package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/careerlens/internal/domain/model"
)

func fastClient(tmdbURL, omdbURL string) *Client {
	return New(
		WithTMDB(tmdbURL, "tmdb-key"),
		WithOMDB(omdbURL, "omdb-key"),
		WithRateLimit(1000),
		WithRetry(3, time.Millisecond, 2*time.Millisecond),
		WithTimeout(time.Second),
	)
}

func TestDemoMode(t *testing.T) {
	ctx := context.Background()

	Convey("Given a client without API keys", t, func() {
		c := New()

		Convey("Then search matches demo names by substring", func() {
			res := c.SearchPersons(ctx, "EMMA")
			So(res, ShouldHaveLength, 1)
			So(res[0].Name, ShouldEqual, "Emma Stone")
			So(c.SearchPersons(ctx, "nobody"), ShouldBeEmpty)
			So(c.SearchPersons(ctx, "o"), ShouldHaveLength, 4)
		})

		Convey("Then person details exist for the detailed demo people only", func() {
			p, ok := c.PersonDetails(ctx, 1)
			So(ok, ShouldBeTrue)
			So(p.Name, ShouldEqual, "Leonardo DiCaprio")
			So(p.MovieCredits.Cast, ShouldHaveLength, 4)

			_, ok = c.PersonDetails(ctx, 3)
			So(ok, ShouldBeFalse)
		})

		Convey("Then enrichment falls back to N/A for unknown titles", func() {
			So(c.MovieEnrichment(ctx, "Titanic", model.IntPtr(1997)).BoxOffice, ShouldEqual, "$2,187,463,944")
			So(c.MovieEnrichment(ctx, "The Revenant", nil).BoxOffice, ShouldEqual, "N/A")
		})

		Convey("Then the popular listing has the demo people", func() {
			So(c.PopularPersons(ctx, 1), ShouldHaveLength, 4)
		})
	})

	Convey("Given keys but forced demo data", t, func() {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer srv.Close()
		c := New(WithTMDB(srv.URL, "k"), WithOMDB(srv.URL, "k"), WithDemoData(true))

		c.SearchPersons(ctx, "emma")
		c.MovieEnrichment(ctx, "Titanic", nil)

		Convey("Then no upstream request is made", func() {
			So(atomic.LoadInt32(&hits), ShouldEqual, 0)
		})
	})
}

func TestTMDB(t *testing.T) {
	ctx := context.Background()

	Convey("Given a healthy TMDB server", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/search/person", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("api_key") != "tmdb-key" || r.URL.Query().Get("query") != "tom hanks" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"results":[{"id":31,"name":"Tom Hanks","profile_path":"/th.jpg","popularity":55.2}]}`))
		})
		mux.HandleFunc("/person/31", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("append_to_response") != "movie_credits" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"id":31,"name":"Tom Hanks","birthday":"1956-07-09","biography":"b",
				"place_of_birth":"Concord","profile_path":null,
				"movie_credits":{"cast":[{"title":"Big","release_date":"1988-06-03","vote_average":7.2}]}}`))
		})
		mux.HandleFunc("/person/popular", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") != "2" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"results":[{"id":1,"name":"A","popularity":9},{"id":2,"name":"B","popularity":8}]}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()
		c := fastClient(srv.URL, srv.URL)

		Convey("Then search results are decoded", func() {
			res := c.SearchPersons(ctx, "tom hanks")
			So(res, ShouldHaveLength, 1)
			So(res[0].ID, ShouldEqual, 31)
			So(*res[0].ProfilePath, ShouldEqual, "/th.jpg")
			So(res[0].Popularity, ShouldEqual, 55.2)
		})

		Convey("Then person details include credits", func() {
			p, ok := c.PersonDetails(ctx, 31)
			So(ok, ShouldBeTrue)
			So(p.Birthday, ShouldEqual, "1956-07-09")
			So(p.ProfilePath, ShouldBeNil)
			So(p.MovieCredits.Cast, ShouldResemble, []model.RawCredit{{Title: "Big", ReleaseDate: "1988-06-03", VoteAverage: 7.2}})
		})

		Convey("Then popular pages are requested by number", func() {
			So(c.PopularPersons(ctx, 2), ShouldHaveLength, 2)
		})
	})
}

func TestOMDB(t *testing.T) {
	ctx := context.Background()

	Convey("Given a healthy OMDB server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("apikey") != "omdb-key" || q.Get("t") != "Big" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if q.Get("y") != "" && q.Get("y") != "1988" {
				_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
				return
			}
			_, _ = w.Write([]byte(`{"Title":"Big","Year":"1988","BoxOffice":"$114,968,774","imdbRating":"7.3"}`))
		}))
		defer srv.Close()
		c := fastClient(srv.URL, srv.URL)

		Convey("Then enrichment is decoded", func() {
			e := c.MovieEnrichment(ctx, "Big", model.IntPtr(1988))
			So(e.BoxOffice, ShouldEqual, "$114,968,774")
			So(e.Rating, ShouldEqual, "7.3")
		})

		Convey("Then an unknown title yields empty box office", func() {
			So(c.MovieEnrichment(ctx, "Big", model.IntPtr(2001)).BoxOffice, ShouldEqual, "")
		})
	})
}

func TestFailures(t *testing.T) {
	ctx := context.Background()

	Convey("Given a server that always fails with 500", t, func() {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()
		c := fastClient(srv.URL, srv.URL)

		res := c.SearchPersons(ctx, "leonardo")

		Convey("Then the request is retried up to the attempt limit", func() {
			So(atomic.LoadInt32(&hits), ShouldEqual, 3)
		})

		Convey("Then demo data is served instead", func() {
			So(res, ShouldHaveLength, 1)
			So(res[0].Name, ShouldEqual, "Leonardo DiCaprio")
		})
	})

	Convey("Given a server that rejects with 404", t, func() {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()
		c := fastClient(srv.URL, srv.URL)

		for i := 0; i < 7; i++ {
			c.MovieEnrichment(ctx, "Titanic", nil)
		}

		Convey("Then rejections are neither retried nor trip the breaker", func() {
			So(atomic.LoadInt32(&hits), ShouldEqual, 7)
			So(c.breakers[upstreamOMDB].State(), ShouldEqual, gobreaker.StateClosed)
		})

		Convey("Then the enrichment falls back to demo data", func() {
			So(c.MovieEnrichment(ctx, "Titanic", nil).BoxOffice, ShouldEqual, "$2,187,463,944")
		})
	})

	Convey("Given a server returning malformed JSON", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"results": [`))
		}))
		defer srv.Close()
		c := fastClient(srv.URL, srv.URL)

		Convey("Then the popular listing falls back to demo data", func() {
			So(c.PopularPersons(ctx, 1), ShouldHaveLength, 4)
		})
	})

	Convey("Given a TMDB server that keeps failing", t, func() {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()
		c := New(
			WithTMDB(srv.URL, "k"),
			WithOMDB(srv.URL, "k"),
			WithRateLimit(1000),
			WithRetry(1, time.Millisecond, time.Millisecond),
		)

		for i := 0; i < breakerTripFailures+3; i++ {
			c.SearchPersons(ctx, "emma")
		}

		Convey("Then the breaker opens and stops calling upstream", func() {
			So(c.breakers[upstreamTMDB].State(), ShouldEqual, gobreaker.StateOpen)
			So(atomic.LoadInt32(&hits), ShouldEqual, breakerTripFailures)
		})

		Convey("Then the other upstream keeps its own breaker", func() {
			So(c.breakers[upstreamOMDB].State(), ShouldEqual, gobreaker.StateClosed)
		})
	})

	Convey("Given a cancelled context", t, func() {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer srv.Close()
		c := fastClient(srv.URL, srv.URL)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		p, ok := c.PersonDetails(cctx, 2)

		Convey("Then demo data is returned without reaching upstream", func() {
			So(ok, ShouldBeTrue)
			So(p.Name, ShouldEqual, "Emma Stone")
			So(atomic.LoadInt32(&hits), ShouldEqual, 0)
		})
	})
}
