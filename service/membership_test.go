package service_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/service"
)

func TestValidateMembership(t *testing.T) {
	courses := []string{"Long", "Short"}
	categories := []string{"Open"}

	Convey("Given an event with configured courses and categories", t, func() {
		Convey("When both selections are configured", func() {
			So(service.ValidateMembership(courses, categories, "Short", "Open"), ShouldBeNil)
		})

		Convey("When the course is not configured", func() {
			err := service.ValidateMembership(courses, categories, "Medium", "Open")

			Convey("Then the allowed courses are listed", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldEqual, "course must be one of the event courses: Long, Short")
				So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)
				So(apperr.Status(err), ShouldEqual, 400)
			})
		})

		Convey("When both course and category are wrong", func() {
			err := service.ValidateMembership(courses, categories, "Medium", "Vets")

			Convey("Then only the course failure is reported", func() {
				var me *service.MembershipError
				So(errors.As(err, &me), ShouldBeTrue)
				So(me.Field, ShouldEqual, "course")
			})
		})

		Convey("When only the category is wrong", func() {
			err := service.ValidateMembership(courses, categories, "Long", "Vets")
			So(err.Error(), ShouldEqual, "category must be one of the event categories: Open")
		})

		Convey("When matching is attempted with different case", func() {
			So(service.ValidateMembership(courses, categories, "long", "Open"), ShouldNotBeNil)
		})
	})

	Convey("Given an event with nothing configured", t, func() {
		err := service.ValidateMembership(nil, nil, "Long", "Open")
		So(err.Error(), ShouldEqual, "course must be one of the event courses: (none configured)")

		err = service.ValidateMembership([]string{"Long"}, []string{}, "Long", "Open")
		So(err.Error(), ShouldEqual, "category must be one of the event categories: (none configured)")
	})
}
