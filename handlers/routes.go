package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/padraicbc/rogainizer/config"
)

// Register mounts the API for the given event schema. fetchRate is the
// sustained number of JSON proxy requests allowed per client IP per second.
func (h *Handler) Register(e *echo.Echo, schema string, fetchRate float64) {
	e.GET("/", h.Root)

	api := e.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/users", h.Users)
	api.POST("/users", h.CreateUser)
	api.GET("/json-loader", h.JSONLoader, fetchLimiter(fetchRate))

	switch schema {
	case config.SchemaResults:
		api.GET("/events", h.ResultEvents)
		api.POST("/events/save-result", h.SaveResult)
		api.DELETE("/events/:id", h.DeleteResultEvent)
	default:
		api.GET("/events", h.Events)
		api.POST("/events", h.CreateEvent)
		api.PUT("/events/:id", h.UpdateEvent)
		api.DELETE("/events/:id", h.DeleteEvent)

		api.GET("/events/:eventId/teams", h.Teams)
		api.POST("/events/:eventId/teams", h.CreateTeam)
		api.PUT("/events/:eventId/teams/:teamId", h.UpdateTeam)
		api.DELETE("/events/:eventId/teams/:teamId", h.DeleteTeam)
	}
}

func fetchLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests.")
		},
	})
}
