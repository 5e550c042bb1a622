package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/config"
	"github.com/padraicbc/rogainizer/handlers"
	"github.com/padraicbc/rogainizer/metrics"
	"github.com/padraicbc/rogainizer/store/storetest"
)

func TestJSONLoader(t *testing.T) {
	Convey("Given an upstream server and a proxy with a short timeout", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/ok":
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				_, _ = w.Write([]byte(`{"teams":[1,2,3]}`))
			case "/html":
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte(`<html></html>`))
			case "/broken":
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"teams":`))
			case "/accept":
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`"` + r.Header.Get("Accept") + `"`))
			case "/slow":
				select {
				case <-time.After(2 * time.Second):
				case <-r.Context().Done():
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{}`))
			default:
				http.Error(w, "gone", http.StatusNotFound)
			}
		}))
		Reset(upstream.Close)

		mem := storetest.NewMemory()
		h := handlers.New(handlers.Options{
			DB:           mem,
			Log:          zap.NewNop(),
			Metrics:      metrics.New(),
			FetchTimeout: 200 * time.Millisecond,
		})
		e := echo.New()
		e.HTTPErrorHandler = handlers.ErrorHandler(zap.NewNop())
		h.Register(e, config.SchemaCourses, 100)

		get := func(target string) *httptest.ResponseRecorder {
			path := "/api/json-loader"
			if target != "" {
				path += "?url=" + url.QueryEscape(target)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			return rec
		}

		Convey("A JSON document is relayed unchanged", func() {
			rec := get(upstream.URL + "/ok")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldEqual, `{"teams":[1,2,3]}`)
		})

		Convey("The upstream is asked for JSON", func() {
			So(get(upstream.URL+"/accept").Body.String(), ShouldEqual, `"application/json"`)
		})

		Convey("Bad input is rejected before any fetch", func() {
			cases := []struct{ target, msg string }{
				{"", `Query parameter "url" is required.`},
				{"   ", `Query parameter "url" is required.`},
				{"not a url", "Invalid URL."},
				{"http://", "Invalid URL."},
				{"ftp://example.com/x", "Only HTTP/HTTPS URLs are allowed."},
				{"file:///etc/passwd", "Only HTTP/HTTPS URLs are allowed."},
			}
			for _, c := range cases {
				rec := get(c.target)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(decode(rec)["message"], ShouldEqual, c.msg)
			}
		})

		Convey("Upstream failures map to gateway errors", func() {
			rec := get(upstream.URL + "/missing")
			So(rec.Code, ShouldEqual, http.StatusBadGateway)
			So(decode(rec)["message"], ShouldEqual, "Failed to fetch JSON (status 404).")

			rec = get(upstream.URL + "/html")
			So(rec.Code, ShouldEqual, http.StatusBadGateway)
			So(decode(rec)["message"], ShouldEqual, "Remote URL did not return JSON.")

			rec = get(upstream.URL + "/broken")
			So(rec.Code, ShouldEqual, http.StatusBadGateway)
			So(decode(rec)["message"], ShouldEqual, "Unable to fetch JSON from URL.")
		})

		Convey("A slow upstream times out", func() {
			rec := get(upstream.URL + "/slow")
			So(rec.Code, ShouldEqual, http.StatusGatewayTimeout)
			So(decode(rec)["message"], ShouldEqual, "Timed out while fetching JSON.")
		})

		Convey("An unreachable host is reported", func() {
			dead := httptest.NewServer(http.NotFoundHandler())
			addr := dead.URL
			dead.Close()

			rec := get(addr + "/ok")
			So(rec.Code, ShouldEqual, http.StatusBadGateway)
			So(decode(rec)["message"], ShouldEqual, "Unable to fetch JSON from URL.")
		})
	})

	Convey("Given a proxy limited to one request per second", t, func() {
		h := handlers.New(handlers.Options{DB: storetest.NewMemory()})
		e := echo.New()
		e.HTTPErrorHandler = handlers.ErrorHandler(zap.NewNop())
		h.Register(e, config.SchemaCourses, 1)

		Convey("A burst from one client is throttled", func() {
			codes := []int{}
			for i := 0; i < 3; i++ {
				rec := httptest.NewRecorder()
				e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/json-loader", nil))
				codes = append(codes, rec.Code)
			}
			So(codes[0], ShouldEqual, http.StatusBadRequest)
			So(codes, ShouldContain, http.StatusTooManyRequests)
		})
	})
}
