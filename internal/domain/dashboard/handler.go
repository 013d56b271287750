package dashboard

import (
	"html/template"

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

// RegisterRoutes binds the dashboard section to the section controller.
func (h *Handler) RegisterRoutes(sections *view.Controller) {
	sections.Register("dashboard", h.Section)
}

// Section assembles the dashboard. A dead session aborts the whole page;
// individual card failures render inside their cards.
func (h *Handler) Section(c echo.Context) (template.HTML, error) {
	d := h.svc.Overview(apiclient.RequestContext(c), session.Token(c))
	if d.Unauthenticated() {
		return "", apiclient.ErrUnauthenticated
	}
	return RenderSection(d), nil
}
