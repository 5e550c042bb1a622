package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/rogainizer/apperr"
	"github.com/padraicbc/rogainizer/service"
)

type saveResultRequest struct {
	Year      jsonNumber `json:"year"`
	Series    jsonText   `json:"series"`
	Name      jsonText   `json:"name"`
	Date      jsonText   `json:"date"`
	Organiser jsonText   `json:"organiser"`
	Duration  jsonNumber `json:"duration"`
	Overwrite jsonBool   `json:"overwrite"`
}

// ResultEvents returns every scored event ordered by date.
func (h *Handler) ResultEvents(c echo.Context) error {
	events, err := h.results.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// SaveResult stores an event keyed by (year, series, name). An existing key
// is only replaced when the client confirms with overwrite=true.
func (h *Handler) SaveResult(c echo.Context) error {
	var req saveResultRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	out, err := h.results.SaveResult(c.Request().Context(), service.ResultInput{
		Year:      req.Year.ptr(),
		Series:    string(req.Series),
		Name:      string(req.Name),
		Date:      string(req.Date),
		Organiser: string(req.Organiser),
		Duration:  req.Duration.ptr(),
		Overwrite: bool(req.Overwrite),
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			h.metrics.SaveResult("conflict")
		}
		return err
	}

	if out.Overwritten {
		h.metrics.SaveResult("overwritten")
		return c.JSON(http.StatusOK, out)
	}
	h.metrics.SaveResult("saved")
	return c.JSON(http.StatusCreated, out)
}

func (h *Handler) DeleteResultEvent(c echo.Context) error {
	id, err := parseID(c, "id", "event")
	if err != nil {
		return err
	}
	if err := h.results.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
