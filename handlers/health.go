package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type healthStatus struct {
	Status  string `json:"status"`
	DB      string `json:"db"`
	Message string `json:"message,omitempty"`
}

// Health runs a trivial query against the database.
func (h *Handler) Health(c echo.Context) error {
	if err := h.db.Ping(c.Request().Context()); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, healthStatus{
			Status:  "error",
			DB:      "disconnected",
			Message: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, healthStatus{Status: "ok", DB: "connected"})
}

// Root confirms the API is up without touching the database.
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Rogainizer API is running"})
}
