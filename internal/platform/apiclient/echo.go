package apiclient

import (
	"context"

	"github.com/labstack/echo/v4"
)

// RequestContext derives the context for a backend call from the inbound
// request, carrying its request ID for cross-service correlation.
func RequestContext(c echo.Context) context.Context {
	rid, _ := c.Get("request_id").(string)
	return WithRequestID(c.Request().Context(), rid)
}
