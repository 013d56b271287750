package view

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentadmin/console/internal/platform/apiclient"
)

// ErrorBanner maps a backend failure to a user-facing banner, preferring the
// server-provided message over the generic fallback.
func ErrorBanner(err error, fallback string) template.HTML {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return Banner(BannerError, apiErr.UserMessage(fallback))
	}
	return Banner(BannerError, fallback)
}

// APIFail terminates a handler after a backend call failed. Authentication
// failures abandon the operation and send the browser to the login page;
// everything else surfaces as an error banner fragment.
func APIFail(c echo.Context, err error, fallback string) error {
	if errors.Is(err, apiclient.ErrUnauthenticated) {
		if c.Request().Header.Get("X-Requested-With") != "" {
			c.Response().Header().Set("X-Console-Redirect", "/login")
			return c.NoContent(http.StatusUnauthorized)
		}
		return c.Redirect(http.StatusFound, "/login")
	}

	status := http.StatusBadGateway
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		status = apiErr.StatusCode
	}
	return c.HTML(status, string(ErrorBanner(err, fallback)))
}
