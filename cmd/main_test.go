package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/careerlens/internal/config"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("CAREERLENS_ADDR", ":8080")
			_ = os.Setenv("CAREERLENS_REQUESTS_PER_SECOND", "5")
			defer func() {
				_ = os.Unsetenv("CAREERLENS_ADDR")
				_ = os.Unsetenv("CAREERLENS_REQUESTS_PER_SECOND")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RequestsPerSecond, convey.ShouldEqual, 5.0)
			})
		})

		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("CAREERLENS_ADDR", "")
			defer func() { _ = os.Unsetenv("CAREERLENS_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a handler wired in demo mode", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.UseDemoData = true
		h := newHandler(ctx, cfg, logger.NewNop())

		get := func(target string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
			return w
		}

		convey.Convey("Then the API routes are served", func() {
			convey.So(get("/api/search-actor?q=emma").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/actor/Emma%20Stone").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/charts-data/Leonardo").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/stats").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then the docs routes are served", func() {
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then the fetcher honors demo mode", func() {
			convey.So(newFetcher(cfg, logger.NewNop()).PopularPersons(ctx, 1), convey.ShouldHaveLength, 4)
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given a metrics configuration", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.MetricsNamespace = "cl"
		cfg.MetricsSubsystem = "api"
		cfg.MetricsRefreshMS = 250
		cfg.MetricsLabels = map[string]string{"env": "ci"}
		defer metrics.Configure(metricsOptions(config.New(ctx))...)

		convey.Convey("When it is applied", func() {
			metrics.Configure(metricsOptions(cfg)...)

			convey.Convey("Then the refresh interval follows it", func() {
				convey.So(metrics.RefreshInterval(), convey.ShouldEqual, 250*time.Millisecond)
			})

			convey.Convey("Then /healthz exposes the configured names", func() {
				h := newHandler(ctx, cfg, logger.NewNop())
				h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/actor/Emma%20Stone", nil))
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `cl_api_careers_normalized_total{env="ci"}`)
			})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When its context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.Convey("Then it returns without panicking", func() {
				convey.So(func() {
					startSystemMetricsUpdater(ctx, 10*time.Millisecond)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating once", func() {
			convey.Convey("Then it should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})
	})
}
