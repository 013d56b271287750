package treatment

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

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

// RegisterRoutes mounts the treatment fragment and form routes and binds the
// treatments section to the section controller.
func (h *Handler) RegisterRoutes(g *echo.Group, sections *view.Controller) {
	sections.Register("treatments", h.Section)

	g.GET("/treatments/rows", h.Rows)
	g.GET("/treatments/form", h.NewForm)
	g.GET("/treatments/:id/form", h.EditForm)
	g.POST("/treatments/save", h.Save)
	g.GET("/treatments/:id/confirm-delete", h.ConfirmDelete)
	g.POST("/treatments/:id/delete", h.Delete)
}

// Section loads the catalog and renders the full section. Load failures
// render the empty state with an error banner, never stale rows.
func (h *Handler) Section(c echo.Context) (template.HTML, error) {
	items, err := h.svc.Load(apiclient.RequestContext(c), session.Token(c))
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			return "", err
		}
		return view.ErrorBanner(err, "Failed to load treatments") + RenderSection(nil), nil
	}
	return RenderSection(items), nil
}

// Rows serves the refreshed table body.
func (h *Handler) Rows(c echo.Context) error {
	if !h.svc.Loaded() {
		if _, err := h.svc.Load(apiclient.RequestContext(c), session.Token(c)); err != nil {
			return view.APIFail(c, err, "Failed to load treatments")
		}
	}
	return c.HTML(http.StatusOK, string(RenderRows(h.svc.Cached())))
}

// NewForm serves the reset create form.
func (h *Handler) NewForm(c echo.Context) error {
	return c.HTML(http.StatusOK, string(RenderForm(nil)))
}

// EditForm fetches the treatment and serves the populated edit form.
func (h *Handler) EditForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.Get(apiclient.RequestContext(c), session.Token(c), id)
	if err != nil {
		return view.APIFail(c, err, "Failed to load treatment data")
	}
	return c.HTML(http.StatusOK, string(RenderForm(t)))
}

// Save creates or updates a treatment depending on the hidden id field.
func (h *Handler) Save(c echo.Context) error {
	duration := 30
	if v := strings.TrimSpace(c.FormValue("duration_minutes")); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, "duration_minutes must be a number")))
		}
		duration = parsed
	}

	payload := Payload{
		Name:            strings.TrimSpace(c.FormValue("name")),
		Description:     optional(c.FormValue("description")),
		DurationMinutes: duration,
		IsActive:        c.FormValue("is_active") == "true",
	}
	if v := strings.TrimSpace(c.FormValue("price")); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, "price must be a number")))
		}
		payload.Price = &price
	}

	if err := Validate(payload); err != nil {
		return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, err.Error())))
	}

	ctx, tok := apiclient.RequestContext(c), session.Token(c)
	idRaw := strings.TrimSpace(c.FormValue("id"))

	var err error
	message := "Treatment added successfully"
	if idRaw != "" {
		var id int64
		if id, err = strconv.ParseInt(idRaw, 10, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		err = h.svc.Update(ctx, tok, id, payload)
		message = "Treatment updated successfully"
	} else {
		err = h.svc.Create(ctx, tok, payload)
	}
	if err != nil {
		return view.APIFail(c, err, "Failed to save treatment")
	}

	items, err := h.svc.Load(ctx, tok)
	if err != nil {
		return view.APIFail(c, err, "Failed to reload treatments")
	}
	c.Response().Header().Set("X-Console-Modal", "close")
	return c.HTML(http.StatusOK, string(view.Banner(view.BannerSuccess, message))+string(RenderRows(items)))
}

// ConfirmDelete serves the confirmation step. No DELETE is issued until the
// user confirms.
func (h *Handler) ConfirmDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.Get(apiclient.RequestContext(c), session.Token(c), id)
	if err != nil {
		return view.APIFail(c, err, "Failed to load treatment data")
	}
	return c.HTML(http.StatusOK, string(RenderDeleteConfirm(t)))
}

// Delete issues the DELETE after confirmation and reloads the catalog.
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx, tok := apiclient.RequestContext(c), session.Token(c)
	if err := h.svc.Delete(ctx, tok, id); err != nil {
		return view.APIFail(c, err, "Failed to delete treatment")
	}
	items, err := h.svc.Load(ctx, tok)
	if err != nil {
		return view.APIFail(c, err, "Failed to reload treatments")
	}
	c.Response().Header().Set("X-Console-Modal", "close")
	return c.HTML(http.StatusOK, string(view.Banner(view.BannerSuccess, "Treatment deleted successfully"))+string(RenderRows(items)))
}

// optional maps a blank form field to null.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
