package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithRegistry(registry))

		Convey("When incrementing the voting counters", func() {
			m.duelsServed.Inc()
			m.votesApplied.Inc()
			m.votesApplied.Inc()
			m.rowsPersisted.Add(4)

			Convey("Then each counter reports its count", func() {
				So(testutil.ToFloat64(m.duelsServed), ShouldEqual, 1)
				So(testutil.ToFloat64(m.votesApplied), ShouldEqual, 2)
				So(testutil.ToFloat64(m.rowsPersisted), ShouldEqual, 4)
				So(testutil.ToFloat64(m.votesDuplicate), ShouldEqual, 0)
			})
		})

		Convey("When setting the collection gauges", func() {
			m.recordsTotal.Set(5)
			m.entitiesTotal.Set(3)
			m.genresTotal.Set(6)

			Convey("Then duplicate rows and entities are tracked separately", func() {
				So(testutil.ToFloat64(m.recordsTotal), ShouldEqual, 5)
				So(testutil.ToFloat64(m.entitiesTotal), ShouldEqual, 3)
				So(testutil.ToFloat64(m.genresTotal), ShouldEqual, 6)
			})
		})

		Convey("When recording HTTP traffic", func() {
			m.httpRequests.WithLabelValues("vote", "POST", "200").Inc()
			m.httpRequests.WithLabelValues("vote", "POST", "200").Inc()
			m.httpRequests.WithLabelValues("duel", "GET", "422").Inc()

			Convey("Then counts split by label set", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("vote", "POST", "200")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("duel", "GET", "422")), ShouldEqual, 1)
			})
		})

		Convey("When gathering from the registry", func() {
			m.duelsServed.Inc()
			families, err := registry.Gather()

			Convey("Then metrics carry the service namespace", func() {
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "reelo_rating_duels_served_total")
				So(names, ShouldContain, "reelo_rating_store_save_latency_milliseconds")
			})
		})
	})

	Convey("Given a manager with overridden identity", t, func() {
		registry := prometheus.NewRegistry()
		NewManager(
			WithRegistry(registry),
			WithNamespace("other"),
			WithSubsystem("sub"),
		)

		Convey("When gathering", func() {
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			found := false
			for _, f := range families {
				if f.GetName() == "other_sub_votes_applied_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When driving the package-level helpers", func() {
			before := testutil.ToFloat64(globalManager.votesApplied)

			RecordDuelServed()
			RecordSamplerFallback()
			RecordVoteApplied()
			RecordVoteDuplicate()
			RecordPersistError()
			RecordRowsPersisted(2)
			UpdateRecordsTotal(10)
			UpdateEntitiesTotal(7)
			UpdateGenresTotal(4)
			RecordStoreLoadLatency(12.5)
			RecordStoreSaveLatency(3.2)
			RecordHTTPRequest("vote", "POST", "200")
			RecordHTTPRequestDuration("vote", "POST", "200", 4.2)
			UpdateSystemMemoryUsage(1 << 20)
			UpdateSystemGoroutineCount(8)

			Convey("Then they land on the shared registry", func() {
				So(testutil.ToFloat64(globalManager.votesApplied), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.recordsTotal), ShouldEqual, 10)
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
