package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/rogainizer/apperr"
)

func TestClassify(t *testing.T) {
	Convey("Given errors from the storage drivers", t, func() {
		Convey("When there is no error", func() {
			So(Classify(nil, "events"), ShouldBeNil)
		})

		Convey("When MySQL reports a missing table", func() {
			err := Classify(fmt.Errorf("query: %w", &mysql.MySQLError{Number: 1146, Message: "Table 'x.events' doesn't exist"}), "events")
			So(errors.Is(err, apperr.ErrSchema), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "events table does not exist. Run the admin initdb command first.")
		})

		Convey("When MySQL reports a duplicate entry", func() {
			err := Classify(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, "users")
			So(errors.Is(err, apperr.ErrConflict), ShouldBeTrue)
			So(apperr.Exists(err), ShouldBeFalse)
		})

		Convey("When any other MySQL error occurs", func() {
			err := Classify(&mysql.MySQLError{Number: 1045, Message: "Access denied"}, "users")
			So(errors.Is(err, apperr.ErrStorage), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Access denied")
		})

		Convey("When the error is unknown", func() {
			cause := errors.New("connection reset by peer")
			err := Classify(cause, "teams")
			So(errors.Is(err, apperr.ErrStorage), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "connection reset by peer")
		})

		Convey("When the error is already classified", func() {
			in := apperr.NotFound("team not found")
			So(Classify(in, "teams"), ShouldEqual, in)
		})
	})
}
