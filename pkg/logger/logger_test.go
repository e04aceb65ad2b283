package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field helpers", t, func() {
		Convey("When building typed fields", func() {
			So(String("title", "Heat"), ShouldResemble, Field{Key: "title", Value: "Heat"})
			So(Int("rating", 1516), ShouldResemble, Field{Key: "rating", Value: 1516})
			So(Bool("fallback", true), ShouldResemble, Field{Key: "fallback", Value: true})
			So(Any("extra", 1.5), ShouldResemble, Field{Key: "extra", Value: 1.5})
		})

		Convey("When wrapping an error", func() {
			err := errors.New("boom")
			f := Error(err)
			So(f.Key, ShouldEqual, "error")
			So(f.Value, ShouldEqual, err)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names in the forms operators write", t, func() {
		cases := map[string]slog.Level{
			"debug":   slog.LevelDebug,
			"info":    slog.LevelInfo,
			"":        slog.LevelInfo,
			"warn":    slog.LevelWarn,
			"warning": slog.LevelWarn,
			"error":   slog.LevelError,
			" ERROR ": slog.LevelError,
		}

		Convey("When setting each level", func() {
			for name, want := range cases {
				So(SetLevelString(name), ShouldBeNil)
				So(levelVar.Level(), ShouldEqual, want)
			}
		})

		Convey("When the level is unknown", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}

func TestGlobalLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(Init(), ShouldBeNil)

		Convey("When fetching it", func() {
			l := Get()

			Convey("Then it logs without panicking", func() {
				ctx := context.Background()
				So(func() {
					l.Info(ctx, "vote applied", String("winner", "Heat"), Int("rating", 1516))
					l.Debug(ctx, "below threshold")
					l.Warn(ctx, "warned")
					l.Error(ctx, "failed", Error(errors.New("boom")))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := Named("store")

			So(named, ShouldNotBeNil)
			So(func() { named.Info(context.Background(), "loaded") }, ShouldNotPanic)
		})
	})
}
