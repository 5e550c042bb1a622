package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type userRequest struct {
	Name  jsonText `json:"name"`
	Email jsonText `json:"email"`
}

// Users returns the hundred most recent users.
func (h *Handler) Users(c echo.Context) error {
	users, err := h.users.Recent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	u, err := h.users.Create(c.Request().Context(), string(req.Name), string(req.Email))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}
