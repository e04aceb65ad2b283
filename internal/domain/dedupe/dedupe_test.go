package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/reelo/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeenAndRecord(t *testing.T) {
	Convey("Given an in-memory deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("When an ID is recorded for the first time", func() {
			seen := d.SeenAndRecord(ctx, "duel-1")

			Convey("Then it is reported as unseen and tracked afterwards", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same ID is recorded twice", func() {
			d.SeenAndRecord(ctx, "duel-1")
			seen := d.SeenAndRecord(ctx, "duel-1")

			Convey("Then the second attempt is flagged as a replay", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When an ID is unrecorded", func() {
			d.SeenAndRecord(ctx, "duel-1")
			d.Unrecord(ctx, "duel-1")

			Convey("Then it can be recorded again", func() {
				So(d.SeenAndRecord(ctx, "duel-1"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an unknown ID", func() {
			So(func() { d.Unrecord(ctx, "never-seen") }, ShouldNotPanic)
			So(d.Size(), ShouldEqual, 0)
		})
	})
}

func TestEviction(t *testing.T) {
	Convey("Given a deduper bounded to three IDs", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		for i := 0; i < 3; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("duel-%d", i))
		}

		Convey("When a fourth ID arrives", func() {
			d.SeenAndRecord(ctx, "duel-3")

			Convey("Then the oldest ID is evicted and the rest remain", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "duel-0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "duel-2"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "duel-3"), ShouldBeTrue)
			})
		})

		Convey("When the oldest ID was unrecorded before the set filled up again", func() {
			d.Unrecord(ctx, "duel-0")
			d.SeenAndRecord(ctx, "duel-3")
			d.SeenAndRecord(ctx, "duel-4")

			Convey("Then eviction skips the stale slot and drops a live ID", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "duel-1"), ShouldBeFalse)
			})
		})

		Convey("When many IDs churn through the bounded set", func() {
			for i := 3; i < 100; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("duel-%d", i))
			}

			Convey("Then the size never exceeds the bound", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "duel-99"), ShouldBeTrue)
			})
		})
	})
}

func TestConcurrentRecording(t *testing.T) {
	Convey("Given concurrent callers racing on the same ID", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		const goroutines = 32
		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			unseen int
		)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !d.SeenAndRecord(ctx, "contested") {
					mu.Lock()
					unseen++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly one caller wins the record", func() {
			So(unseen, ShouldEqual, 1)
			So(d.Size(), ShouldEqual, 1)
		})
	})
}
