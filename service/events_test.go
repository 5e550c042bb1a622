package service_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/service"
	"github.com/padraicbc/rogainizer/store/storetest"
)

func TestEventManager(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty event store", t, func() {
		mem := storetest.NewMemory()
		events := service.NewEventManager(mem, zap.NewNop())

		Convey("When an event is created with messy lists", func() {
			ev, err := events.Create(ctx, service.EventInput{
				Name:       "  Spring 24hr ",
				Date:       "2024-10-12T00:00:00Z",
				Location:   "Wombat State Forest",
				Courses:    []any{" Long", "Long", "", 24, nil},
				Categories: "Open",
			})

			Convey("Then the stored event is trimmed, deduplicated and dated", func() {
				So(err, ShouldBeNil)
				So(ev.ID, ShouldBeGreaterThan, 0)
				So(ev.Name, ShouldEqual, "Spring 24hr")
				So(ev.Date, ShouldEqual, "2024-10-12")
				So([]string(ev.Courses), ShouldResemble, []string{"Long", "24"})
				So([]string(ev.Categories), ShouldResemble, []string{})
			})
		})

		Convey("When required fields are blank", func() {
			_, err := events.Create(ctx, service.EventInput{Name: "x", Date: "2024-01-01", Location: " "})
			So(apperr.Status(err), ShouldEqual, 400)
			So(err.Error(), ShouldEqual, "name, date, and location are required")
			So(mem.Calls(), ShouldEqual, 0)
		})

		Convey("When the date is not a calendar date", func() {
			_, err := events.Create(ctx, service.EventInput{Name: "x", Date: "next week", Location: "y"})
			So(err.Error(), ShouldEqual, "date must be a calendar date (YYYY-MM-DD)")
		})

		Convey("Given several events", func() {
			later, _ := events.Create(ctx, service.EventInput{Name: "B", Date: "2024-06-01", Location: "L"})
			earlier, _ := events.Create(ctx, service.EventInput{Name: "A", Date: "2024-03-01", Location: "L"})

			Convey("Then they list by date", func() {
				list, err := events.List(ctx)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 2)
				So(list[0].ID, ShouldEqual, earlier.ID)
				So(list[1].ID, ShouldEqual, later.ID)
			})

			Convey("When one is updated", func() {
				got, err := events.Update(ctx, later.ID, service.EventInput{
					Name: "B2", Date: "2024-06-02", Location: "M", Courses: []any{"Short"},
				})
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "B2")
				So([]string(got.Courses), ShouldResemble, []string{"Short"})
			})

			Convey("When an unknown id is updated", func() {
				_, err := events.Update(ctx, 999, service.EventInput{Name: "B", Date: "2024-06-01", Location: "L"})
				So(apperr.Status(err), ShouldEqual, 404)
			})

			Convey("When an event with teams is deleted", func() {
				teams := service.NewTeamManager(mem, mem, zap.NewNop())
				_, err := events.Update(ctx, later.ID, service.EventInput{
					Name: "B", Date: "2024-06-01", Location: "L",
					Courses: []any{"Long"}, Categories: []any{"Open"},
				})
				So(err, ShouldBeNil)
				_, err = teams.Create(ctx, later.ID, service.TeamInput{
					Name: "T", Competitors: "a", Course: "Long", Category: "Open",
				})
				So(err, ShouldBeNil)

				So(events.Delete(ctx, later.ID), ShouldBeNil)

				Convey("Then its teams go with it", func() {
					list, err := teams.List(ctx, later.ID)
					So(err, ShouldBeNil)
					So(list, ShouldBeEmpty)
					So(apperr.Status(events.Delete(ctx, later.ID)), ShouldEqual, 404)
				})
			})
		})

		Convey("When ids are not positive", func() {
			So(apperr.Status(events.Delete(ctx, 0)), ShouldEqual, 400)
			_, err := events.Update(ctx, -1, service.EventInput{})
			So(err.Error(), ShouldEqual, "invalid event id")
			So(mem.Calls(), ShouldEqual, 0)
		})
	})
}
