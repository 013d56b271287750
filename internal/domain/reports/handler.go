package reports

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/platform/session"
	"github.com/dentadmin/console/internal/view"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the report data route and binds the reports section
// to the section controller.
func (h *Handler) RegisterRoutes(g *echo.Group, sections *view.Controller) {
	sections.Register("reports", h.Section)
	g.GET("/reports/data", h.Data)
}

// Section renders the report controls with the intro notice. Nothing is
// fetched until a range is submitted.
func (h *Handler) Section(c echo.Context) (template.HTML, error) {
	return RenderSection(Range{}, Intro()), nil
}

// Data generates the report fragment for a submitted date range. An invalid
// range is refused with a banner before any backend request.
func (h *Handler) Data(c echo.Context) error {
	r, err := ParseRange(c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, err.Error())))
	}

	d := h.svc.Generate(apiclient.RequestContext(c), session.Token(c), r)
	if d.Unauthenticated() {
		return view.APIFail(c, apiclient.ErrUnauthenticated, "Session expired")
	}
	return c.HTML(http.StatusOK, string(RenderResults(d)))
}
