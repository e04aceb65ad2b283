package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/okian/reelo/internal/adapters/store/sqlite"
	"github.com/okian/reelo/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func openTempStore(t *testing.T) (*sqlite.Store, context.Context) {
	t.Helper()
	ctx := context.Background()
	st, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, ctx
}

func TestOpen(t *testing.T) {
	Convey("Given a fresh database path", t, func() {
		st, ctx := openTempStore(t)

		Convey("When loading before any inserts", func() {
			records, err := st.LoadAll(ctx)

			Convey("Then the store is empty but usable", func() {
				So(err, ShouldBeNil)
				So(records, ShouldBeEmpty)
			})
		})
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("Given a store seeded with rows including a duplicate title", t, func() {
		st, ctx := openTempStore(t)

		seed := []model.Record{
			{Title: "Heat", Director: "Michael Mann", Genres: "Action,Crime", Rating: 1500},
			{Title: "Alien", Director: "Ridley Scott", Genres: "Horror,Sci-Fi", Rating: 1500},
			{Title: " heat ", Director: "Michael Mann", Genres: "Action,Crime", Rating: 1500},
		}
		for _, rec := range seed {
			So(st.Insert(ctx, rec), ShouldBeNil)
		}

		Convey("When loading all rows", func() {
			records, err := st.LoadAll(ctx)

			Convey("Then rows come back in insertion order with bound columns", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[0].Title, ShouldEqual, "Heat")
				So(records[0].Director, ShouldEqual, "Michael Mann")
				So(records[0].Rating, ShouldEqual, 1500)
				So(records[1].Title, ShouldEqual, "Alien")
				So(records[2].Row, ShouldEqual, 2)
			})

			Convey("Then metadata columns survive as passthrough fields", func() {
				So(records[0].Extra, ShouldContainKey, "rating")
				So(records[0].Extra, ShouldContainKey, "platform")
			})
		})

		Convey("When saving a rating for the duplicated title", func() {
			updated, err := st.SaveRating(ctx, "HEAT", 1516)

			Convey("Then both rows of the entity are written", func() {
				So(err, ShouldBeNil)
				So(updated, ShouldEqual, 2)

				records, err := st.LoadAll(ctx)
				So(err, ShouldBeNil)
				So(records[0].Rating, ShouldEqual, 1516)
				So(records[2].Rating, ShouldEqual, 1516)
				So(records[1].Rating, ShouldEqual, 1500)
			})
		})

		Convey("When saving a rating for an unknown title", func() {
			updated, err := st.SaveRating(ctx, "Nosferatu", 1600)

			Convey("Then nothing matches and nothing fails", func() {
				So(err, ShouldBeNil)
				So(updated, ShouldEqual, 0)
			})
		})

		Convey("When repeating the same save", func() {
			first, err := st.SaveRating(ctx, "Alien", 1484)
			So(err, ShouldBeNil)
			second, err := st.SaveRating(ctx, "Alien", 1484)

			Convey("Then the write is idempotent", func() {
				So(err, ShouldBeNil)
				So(second, ShouldEqual, first)

				records, _ := st.LoadAll(ctx)
				So(records[1].Rating, ShouldEqual, 1484)
			})
		})
	})
}
