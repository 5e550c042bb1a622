package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/rogainizer/apperr"
)

func TestStatus(t *testing.T) {
	Convey("Given errors of each kind", t, func() {
		So(apperr.Status(nil), ShouldEqual, http.StatusOK)
		So(apperr.Status(apperr.Validation("bad")), ShouldEqual, http.StatusBadRequest)
		So(apperr.Status(apperr.NotFound("gone")), ShouldEqual, http.StatusNotFound)
		So(apperr.Status(apperr.Conflict("dup", true)), ShouldEqual, http.StatusConflict)
		So(apperr.Status(apperr.Schema("events", errors.New("x"))), ShouldEqual, http.StatusInternalServerError)
		So(apperr.Status(apperr.Storage(errors.New("boom"))), ShouldEqual, http.StatusInternalServerError)
		So(apperr.Status(errors.New("plain")), ShouldEqual, http.StatusInternalServerError)

		Convey("Then wrapping keeps the kind", func() {
			wrapped := fmt.Errorf("creating team: %w", apperr.NotFound("event not found"))
			So(apperr.Status(wrapped), ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMessages(t *testing.T) {
	Convey("Given storage errors", t, func() {
		cause := errors.New("connection refused")

		Convey("Then storage errors pass the driver message through", func() {
			err := apperr.Storage(cause)
			So(err.Error(), ShouldEqual, "connection refused")
			So(errors.Is(err, cause), ShouldBeTrue)
			So(errors.Is(err, apperr.ErrStorage), ShouldBeTrue)
		})

		Convey("Then schema errors carry a remediation hint", func() {
			err := apperr.Schema("teams", cause)
			So(err.Error(), ShouldContainSubstring, "teams table does not exist")
			So(errors.Is(err, apperr.ErrSchema), ShouldBeTrue)
		})

		Convey("Then only natural-key conflicts report exists", func() {
			So(apperr.Exists(apperr.Conflict("dup", true)), ShouldBeTrue)
			So(apperr.Exists(apperr.Conflict("dup", false)), ShouldBeFalse)
			So(apperr.Exists(errors.New("x")), ShouldBeFalse)
		})
	})
}
