package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/rogainizer/service"
)

type teamRequest struct {
	Name        jsonText   `json:"name"`
	Competitors jsonText   `json:"competitors"`
	Course      jsonText   `json:"course"`
	Category    jsonText   `json:"category"`
	Score       jsonNumber `json:"score"`
}

func (r teamRequest) input() service.TeamInput {
	return service.TeamInput{
		Name:        string(r.Name),
		Competitors: string(r.Competitors),
		Course:      string(r.Course),
		Category:    string(r.Category),
		Score:       r.Score.ptr(),
	}
}

// Teams lists the teams entered in an event.
func (h *Handler) Teams(c echo.Context) error {
	eventID, err := parseID(c, "eventId", "event")
	if err != nil {
		return err
	}
	teams, err := h.teams.List(c.Request().Context(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teams)
}

// CreateTeam enters a team; course and category must be configured on the event.
func (h *Handler) CreateTeam(c echo.Context) error {
	eventID, err := parseID(c, "eventId", "event")
	if err != nil {
		return err
	}
	var req teamRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	team, err := h.teams.Create(c.Request().Context(), eventID, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, team)
}

func (h *Handler) UpdateTeam(c echo.Context) error {
	eventID, err := parseID(c, "eventId", "event")
	if err != nil {
		return err
	}
	teamID, err := parseID(c, "teamId", "team")
	if err != nil {
		return err
	}
	var req teamRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	team, err := h.teams.Update(c.Request().Context(), eventID, teamID, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

func (h *Handler) DeleteTeam(c echo.Context) error {
	eventID, err := parseID(c, "eventId", "event")
	if err != nil {
		return err
	}
	teamID, err := parseID(c, "teamId", "team")
	if err != nil {
		return err
	}
	if err := h.teams.Delete(c.Request().Context(), eventID, teamID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
