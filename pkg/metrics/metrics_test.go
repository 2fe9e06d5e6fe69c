package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(3*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then options are applied", func() {
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.RefreshInterval(), ShouldEqual, 3*time.Second)
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
			})

			Convey("And collectors are registered on the custom registry", func() {
				manager.cacheClears.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_cache_clears_total")
			})
		})

		Convey("When buckets and labels are changed after being passed", func() {
			buckets := []float64{0.1, 1}
			labels := map[string]string{"env": "ci", "": "dropped"}
			manager := NewManager(
				WithHistogramBuckets(buckets),
				WithCustomLabels(labels),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)
			buckets[0] = 99
			labels["env"] = "prod"

			Convey("Then the manager keeps its own copies without blank keys", func() {
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 1})
				So(manager.customLabels, ShouldResemble, map[string]string{"env": "ci"})
			})
		})

		Convey("When options receive zero values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithRefreshInterval(0),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "careerlens")
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording cache lookups", func() {
			hits := testutil.ToFloat64(globalManager.cacheLookups.WithLabelValues("actor", "hit"))
			misses := testutil.ToFloat64(globalManager.cacheLookups.WithLabelValues("actor", "miss"))
			RecordCacheHit("actor")
			RecordCacheMiss("actor")
			RecordCacheMiss("actor")

			Convey("Then counters move by the recorded amount", func() {
				So(testutil.ToFloat64(globalManager.cacheLookups.WithLabelValues("actor", "hit")), ShouldEqual, hits+1)
				So(testutil.ToFloat64(globalManager.cacheLookups.WithLabelValues("actor", "miss")), ShouldEqual, misses+2)
			})
		})

		Convey("When updating gauges", func() {
			UpdateCacheEntries(7)
			UpdateCircuitBreakerState("tmdb", 2)

			Convey("Then the latest value is exported", func() {
				So(testutil.ToFloat64(globalManager.cacheEntries), ShouldEqual, 7.0)
				So(testutil.ToFloat64(globalManager.breakerState.WithLabelValues("tmdb")), ShouldEqual, 2.0)
			})
		})

		Convey("When recording analytics and upstream metrics", func() {
			before := testutil.ToFloat64(globalManager.careersAnalyzed)
			fallbacks := testutil.ToFloat64(globalManager.upstreamFallbacks.WithLabelValues("omdb", "enrichment"))
			RecordCareerAnalyzed(0.4)
			RecordUpstreamFallback("omdb", "enrichment")

			Convey("Then counters increase", func() {
				So(testutil.ToFloat64(globalManager.careersAnalyzed), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.upstreamFallbacks.WithLabelValues("omdb", "enrichment")), ShouldEqual, fallbacks+1)
			})
		})

		Convey("When recording the remaining metrics", func() {
			Convey("Then nothing panics", func() {
				So(func() {
					RecordCareerNormalized()
					RecordAnalysisError("no_rating_data")
					RecordComparison()
					RecordChartProjection()
					RecordCacheClear()
					RecordSharedLoad()
					RecordUpstreamRequest("tmdb", "success", 12)
					RecordUpstreamRetry("tmdb")
					RecordHTTPRequest("/api/insights", "GET", "200")
					RecordHTTPRequestDuration("/api/insights", "GET", "200", 1.5)
					RecordErrorByComponent("provider", "timeout")
					RecordErrorByEndpoint("/api/actor", "GET", "not_found")
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("When requesting the registry", func() {
			Convey("Then it is the shared custom registry", func() {
				So(GetRegistry(), ShouldEqual, customRegistry)
			})
		})

		Convey("When requesting the refresh interval", func() {
			Convey("Then the global manager's interval is returned", func() {
				So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given a configured global manager", t, func() {
		previousManager, previousRegistry := globalManager, customRegistry
		defer func() { globalManager, customRegistry = previousManager, previousRegistry }()

		Configure(WithNamespace("cl"), WithSubsystem("web"), WithCustomLabels(map[string]string{"env": "ci"}))

		Convey("Then metrics are served from a new registry under the new names", func() {
			So(GetRegistry(), ShouldNotEqual, previousRegistry)
			RecordCareerNormalized()
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "cl_web_careers_normalized_total")
		})

		Convey("When recording is disabled", func() {
			Configure(WithMetricsEnabled(false))
			RecordComparison()

			Convey("Then nothing is counted", func() {
				So(testutil.ToFloat64(globalManager.comparisons), ShouldEqual, 0.0)
			})
		})
	})
}
