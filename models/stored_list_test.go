package models

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStoredList(t *testing.T) {
	Convey("Given a courses column", t, func() {
		Convey("When a list is written", func() {
			v, err := StoredList{" Long", "Short", "Long"}.Value()
			So(err, ShouldBeNil)
			So(v, ShouldEqual, `["Long","Short"]`)
		})

		Convey("When an empty list is written", func() {
			v, err := StoredList(nil).Value()
			So(err, ShouldBeNil)
			So(v, ShouldEqual, `[]`)
		})

		Convey("When the column is scanned", func() {
			var l StoredList
			So(l.Scan([]byte(`["Open","Open ","Vets"]`)), ShouldBeNil)
			So([]string(l), ShouldResemble, []string{"Open", "Vets"})

			Convey("And the stored text is malformed", func() {
				So(l.Scan("{oops"), ShouldBeNil)
				So([]string(l), ShouldResemble, []string{})
			})

			Convey("And the column is NULL", func() {
				So(l.Scan(nil), ShouldBeNil)
				So([]string(l), ShouldResemble, []string{})
			})
		})

		Convey("When a nil list is rendered as JSON", func() {
			b, err := json.Marshal(Event{Name: "Spring"})
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"courses":[]`)
			So(string(b), ShouldContainSubstring, `"categories":[]`)
		})
	})
}
