package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	defaultFetchTimeout = 15 * time.Second
	maxFetchBytes       = 10 << 20
)

// JSONLoader fetches a remote JSON document on behalf of the browser and
// relays it unchanged.
func (h *Handler) JSONLoader(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("url"))
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `Query parameter "url" is required.`)
	}
	target, err := url.Parse(raw)
	if err != nil || target.Scheme == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid URL.")
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return echo.NewHTTPError(http.StatusBadRequest, "Only HTTP/HTTPS URLs are allowed.")
	}
	if target.Host == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid URL.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.fetchTimeout)
	defer cancel()

	body, err := h.fetchJSON(ctx, target.String())
	if err != nil {
		var fe *fetchError
		if errors.As(err, &fe) {
			h.metrics.JSONFetch(fe.outcome)
			h.log.Debug("json fetch failed",
				zap.String("url", target.Redacted()),
				zap.String("outcome", fe.outcome),
				zap.Error(fe.err),
			)
			return echo.NewHTTPError(fe.status, fe.msg)
		}
		return err
	}
	h.metrics.JSONFetch("ok")
	return c.JSONBlob(http.StatusOK, body)
}

type fetchError struct {
	status  int
	msg     string
	outcome string
	err     error
}

func (e *fetchError) Error() string { return e.msg }
func (e *fetchError) Unwrap() error { return e.err }

func (h *Handler) fetchJSON(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, unreachable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.fetch.Do(req)
	if err != nil {
		return nil, classifyFetch(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &fetchError{
			status:  http.StatusBadGateway,
			msg:     fmt.Sprintf("Failed to fetch JSON (status %d).", resp.StatusCode),
			outcome: "upstream_status",
		}
	}
	if !strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "application/json") {
		return nil, &fetchError{
			status:  http.StatusBadGateway,
			msg:     "Remote URL did not return JSON.",
			outcome: "not_json",
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, classifyFetch(ctx, err)
	}
	if !json.Valid(body) {
		return nil, unreachable(errors.New("invalid JSON body"))
	}
	return body, nil
}

func classifyFetch(ctx context.Context, err error) error {
	var ne net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &fetchError{
			status:  http.StatusGatewayTimeout,
			msg:     "Timed out while fetching JSON.",
			outcome: "timeout",
			err:     err,
		}
	}
	return unreachable(err)
}

func unreachable(err error) error {
	return &fetchError{
		status:  http.StatusBadGateway,
		msg:     "Unable to fetch JSON from URL.",
		outcome: "error",
		err:     err,
	}
}
