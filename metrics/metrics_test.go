package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/rogainizer/apperr"
)

func TestMiddleware(t *testing.T) {
	Convey("Given an echo server instrumented with metrics", t, func() {
		m := New()
		e := echo.New()
		e.Use(m.Middleware())
		e.GET("/api/events/:id", func(c echo.Context) error {
			if c.Param("id") == "0" {
				return apperr.Validation("invalid event id")
			}
			return c.NoContent(http.StatusNoContent)
		})

		Convey("When requests hit a parameterized route", func() {
			for _, id := range []string{"1", "2", "0"} {
				rec := httptest.NewRecorder()
				e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events/"+id, nil))
			}

			Convey("Then they are counted by route pattern and status", func() {
				body := scrape(m)
				So(body, ShouldContainSubstring,
					`rogainizer_http_requests_total{method="GET",route="/api/events/:id",status_code="204"} 2`)
				So(body, ShouldContainSubstring,
					`rogainizer_http_requests_total{method="GET",route="/api/events/:id",status_code="400"} 1`)
				So(body, ShouldContainSubstring, "rogainizer_http_request_duration_seconds_bucket")
			})
		})

		Convey("When outcomes are recorded", func() {
			m.SaveResult("conflict")
			m.JSONFetch("timeout")
			body := scrape(m)
			So(body, ShouldContainSubstring, `rogainizer_events_save_results_total{outcome="conflict"} 1`)
			So(body, ShouldContainSubstring, `rogainizer_json_loader_fetches_total{outcome="timeout"} 1`)
		})
	})

	Convey("A nil Metrics ignores outcomes", t, func() {
		var m *Metrics
		So(func() { m.SaveResult("saved"); m.JSONFetch("ok") }, ShouldNotPanic)
	})
}

func scrape(m *Metrics) string {
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}
