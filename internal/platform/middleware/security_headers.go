package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// csp allows same-origin assets plus the two CDNs the page skeleton
// loads Bootstrap, Font Awesome, and Chart.js from. Inline styles stay
// allowed; hidden section placeholders use style attributes.
var csp = strings.Join([]string{
	"default-src 'self'",
	"script-src 'self' https://cdn.jsdelivr.net https://cdnjs.cloudflare.com",
	"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net https://cdnjs.cloudflare.com",
	"font-src 'self' https://cdnjs.cloudflare.com",
	"img-src 'self' data:",
	"frame-ancestors 'none'",
}, "; ")

// SecurityHeaders sets the response headers every console page and
// fragment carries. Responses hold patient data, so caching is off.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", csp)
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cache-Control", "no-store")
			return next(c)
		}
	}
}
