// Package metrics exposes Prometheus counters for the HTTP API.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/padraicbc/rogainizer/apperr"
)

const namespace = "rogainizer"

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	saveResults         *prometheus.CounterVec
	jsonFetches         *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: auto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status_code"},
		),
		httpRequestDuration: auto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status_code"},
		),
		saveResults: auto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "events",
				Name:      "save_results_total",
				Help:      "save-result calls by outcome (saved, overwritten, conflict)",
			},
			[]string{"outcome"},
		),
		jsonFetches: auto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "json_loader",
				Name:      "fetches_total",
				Help:      "JSON proxy fetches by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Middleware records one observation per request, labelled by route pattern
// so path ids do not explode cardinality.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = apperr.Status(err)
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			code := strconv.Itoa(status)
			m.httpRequests.WithLabelValues(route, c.Request().Method, code).Inc()
			m.httpRequestDuration.WithLabelValues(route, c.Request().Method, code).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SaveResult(outcome string) {
	if m == nil {
		return
	}
	m.saveResults.WithLabelValues(outcome).Inc()
}

func (m *Metrics) JSONFetch(outcome string) {
	if m == nil {
		return
	}
	m.jsonFetches.WithLabelValues(outcome).Inc()
}
