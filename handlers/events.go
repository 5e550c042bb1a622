package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/rogainizer/service"
)

type eventRequest struct {
	Name       jsonText `json:"name"`
	Date       jsonText `json:"date"`
	Location   jsonText `json:"location"`
	Courses    any      `json:"courses"`
	Categories any      `json:"categories"`
}

func (r eventRequest) input() service.EventInput {
	return service.EventInput{
		Name:       string(r.Name),
		Date:       string(r.Date),
		Location:   string(r.Location),
		Courses:    r.Courses,
		Categories: r.Categories,
	}
}

// Events returns every event ordered by date.
func (h *Handler) Events(c echo.Context) error {
	events, err := h.events.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// CreateEvent inserts an event with normalized course and category lists.
func (h *Handler) CreateEvent(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ev, err := h.events.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ev)
}

// UpdateEvent replaces an event's fields. Existing teams are not revalidated.
func (h *Handler) UpdateEvent(c echo.Context) error {
	id, err := parseID(c, "id", "event")
	if err != nil {
		return err
	}
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	ev, err := h.events.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev)
}

// DeleteEvent removes an event and, through the foreign key, its teams.
func (h *Handler) DeleteEvent(c echo.Context) error {
	id, err := parseID(c, "id", "event")
	if err != nil {
		return err
	}
	if err := h.events.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
