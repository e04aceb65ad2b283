package memstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/reelo/internal/adapters/store"
	"github.com/okian/reelo/internal/adapters/store/memstore"
	"github.com/okian/reelo/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemstore(t *testing.T) {
	Convey("Given a memory store seeded with duplicate titles", t, func() {
		ctx := context.Background()
		st := memstore.New(
			model.Record{Title: "Heat", Genres: "Action,Crime", Rating: 1550},
			model.Record{Title: "Alien", Genres: "Horror,Sci-Fi"},
			model.Record{Title: "heat", Genres: "Action,Crime", Rating: 1550},
		)

		Convey("When loading all rows", func() {
			records, err := st.LoadAll(ctx)

			Convey("Then rows come back in order with indices and default ratings", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[0].Row, ShouldEqual, 0)
				So(records[2].Row, ShouldEqual, 2)
				So(records[1].Rating, ShouldEqual, model.DefaultRating)
			})

			Convey("Then the returned slice is a copy", func() {
				records[0].Rating = 1
				again, _ := st.LoadAll(ctx)
				So(again[0].Rating, ShouldEqual, 1550)
			})
		})

		Convey("When saving a rating for a duplicated title", func() {
			updated, err := st.SaveRating(ctx, "HEAT", 1566)

			Convey("Then every matching row is written", func() {
				So(err, ShouldBeNil)
				So(updated, ShouldEqual, 2)
				records, _ := st.LoadAll(ctx)
				So(records[0].Rating, ShouldEqual, 1566)
				So(records[2].Rating, ShouldEqual, 1566)
				So(records[1].Rating, ShouldEqual, model.DefaultRating)
			})
		})

		Convey("When saving a rating for an unknown title", func() {
			updated, err := st.SaveRating(ctx, "Nosferatu", 1600)

			Convey("Then no rows change and no error is raised", func() {
				So(err, ShouldBeNil)
				So(updated, ShouldEqual, 0)
			})
		})

		Convey("When write failures are injected", func() {
			cause := errors.New("disk full")
			st.FailSaves(cause)
			_, err := st.SaveRating(ctx, "Heat", 1566)

			Convey("Then the failure carries the persist kind and the cause", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, store.ErrPersist), ShouldBeTrue)
				So(errors.Is(err, cause), ShouldBeTrue)
			})

			Convey("And clearing the injection restores writes", func() {
				st.FailSaves(nil)
				updated, err := st.SaveRating(ctx, "Heat", 1566)
				So(err, ShouldBeNil)
				So(updated, ShouldEqual, 2)
				So(st.SaveCount(), ShouldEqual, 2)
			})
		})
	})
}
