package handlers

import (
	"encoding/json"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTolerantFields(t *testing.T) {
	Convey("Given a body with loosely typed fields", t, func() {
		type body struct {
			Name      jsonText   `json:"name"`
			Score     jsonNumber `json:"score"`
			Overwrite jsonBool   `json:"overwrite"`
		}

		Convey("Numbers and strings both become text", func() {
			var b body
			So(json.Unmarshal([]byte(`{"name":2024}`), &b), ShouldBeNil)
			So(string(b.Name), ShouldEqual, "2024")
			So(json.Unmarshal([]byte(`{"name":null}`), &b), ShouldBeNil)
			So(string(b.Name), ShouldEqual, "")
			So(json.Unmarshal([]byte(`{"name":[1]}`), &b), ShouldNotBeNil)
		})

		Convey("Scores accept numbers and numeric strings", func() {
			var b body
			So(json.Unmarshal([]byte(`{"score":" 7.5 "}`), &b), ShouldBeNil)
			So(*b.Score.ptr(), ShouldEqual, 7.5)
			So(json.Unmarshal([]byte(`{"score":3}`), &b), ShouldBeNil)
			So(*b.Score.ptr(), ShouldEqual, 3.0)
		})

		Convey("Missing, null and empty scores are omitted", func() {
			for _, raw := range []string{`{}`, `{"score":null}`, `{"score":""}`} {
				var b body
				So(json.Unmarshal([]byte(raw), &b), ShouldBeNil)
				So(b.Score.ptr(), ShouldBeNil)
			}
		})

		Convey("Anything else is not a number", func() {
			for _, raw := range []string{`{"score":"abc"}`, `{"score":true}`, `{"score":{}}`} {
				var b body
				So(json.Unmarshal([]byte(raw), &b), ShouldBeNil)
				So(math.IsNaN(*b.Score.ptr()), ShouldBeTrue)
			}
		})

		Convey("Overwrite is only true when asked for", func() {
			for raw, want := range map[string]bool{
				`{"overwrite":true}`:   true,
				`{"overwrite":"true"}`: true,
				`{"overwrite":1}`:      true,
				`{"overwrite":false}`:  false,
				`{"overwrite":"yes"}`:  false,
				`{}`:                   false,
			} {
				var b body
				So(json.Unmarshal([]byte(raw), &b), ShouldBeNil)
				So(bool(b.Overwrite), ShouldEqual, want)
			}
		})
	})
}
