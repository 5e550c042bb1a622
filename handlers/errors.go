package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/apperr"
)

type errorBody struct {
	Message string `json:"message"`
	Exists  bool   `json:"exists,omitempty"`
}

// ErrorHandler renders every error as {"message": ...}. Errors from the
// service layer carry their own status; echo errors keep theirs.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

func render(err error) (int, errorBody) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = fmt.Sprint(he.Message)
		}
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		return he.Code, errorBody{Message: msg}
	}
	return apperr.Status(err), errorBody{Message: err.Error(), Exists: apperr.Exists(err)}
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, param, what string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid %s id", what)
	}
	return id, nil
}
