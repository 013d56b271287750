package patient

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

// RegisterRoutes mounts the patient fragment and form routes and binds the
// patients section to the section controller.
func (h *Handler) RegisterRoutes(g *echo.Group, sections *view.Controller) {
	sections.Register("patients", h.Section)

	g.GET("/patients/rows", h.Rows)
	g.GET("/patients/form", h.NewForm)
	g.GET("/patients/:id/form", h.EditForm)
	g.POST("/patients/save", h.Save)
	g.GET("/patients/:id/confirm-delete", h.ConfirmDelete)
	g.POST("/patients/:id/delete", h.Delete)
}

// Section loads the patient list and renders the full section. Load
// failures render the empty state with an error banner, never stale rows.
func (h *Handler) Section(c echo.Context) (template.HTML, error) {
	items, err := h.svc.Load(apiclient.RequestContext(c), session.Token(c))
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			return "", err
		}
		return view.ErrorBanner(err, "Failed to load patients") + RenderSection(nil), nil
	}
	return RenderSection(items), nil
}

// Rows serves the table body for a client-side search query. The search
// runs over the cached list; no backend round trip unless nothing has been
// loaded yet.
func (h *Handler) Rows(c echo.Context) error {
	if !h.svc.Loaded() {
		if _, err := h.svc.Load(apiclient.RequestContext(c), session.Token(c)); err != nil {
			return view.APIFail(c, err, "Failed to load patients")
		}
	}
	return c.HTML(http.StatusOK, string(RenderRows(h.svc.Search(c.QueryParam("q")))))
}

// NewForm serves the reset create form.
func (h *Handler) NewForm(c echo.Context) error {
	return c.HTML(http.StatusOK, string(RenderForm(nil)))
}

// EditForm fetches the patient and serves the populated edit form.
func (h *Handler) EditForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(apiclient.RequestContext(c), session.Token(c), id)
	if err != nil {
		return view.APIFail(c, err, "Failed to load patient data")
	}
	return c.HTML(http.StatusOK, string(RenderForm(p)))
}

// Save creates or updates a patient depending on the hidden id field. On
// success the modal closes and the refreshed rows ship with the banner; on
// failure the modal stays open and the banner carries the server's message.
func (h *Handler) Save(c echo.Context) error {
	payload := Payload{
		FirstName:             strings.TrimSpace(c.FormValue("first_name")),
		LastName:              strings.TrimSpace(c.FormValue("last_name")),
		Phone:                 strings.TrimSpace(c.FormValue("phone")),
		Email:                 optional(c.FormValue("email")),
		DateOfBirth:           optional(c.FormValue("date_of_birth")),
		Address:               optional(c.FormValue("address")),
		MedicalHistory:        optional(c.FormValue("medical_history")),
		InsuranceProvider:     optional(c.FormValue("insurance_provider")),
		EmergencyContactName:  optional(c.FormValue("emergency_contact_name")),
		EmergencyContactPhone: optional(c.FormValue("emergency_contact_phone")),
		Notes:                 optional(c.FormValue("notes")),
	}

	if err := Validate(payload); err != nil {
		return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, err.Error())))
	}

	ctx, tok := apiclient.RequestContext(c), session.Token(c)
	idRaw := strings.TrimSpace(c.FormValue("id"))

	var err error
	message := "Patient added successfully"
	if idRaw != "" {
		var id int64
		if id, err = strconv.ParseInt(idRaw, 10, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		err = h.svc.Update(ctx, tok, id, payload)
		message = "Patient updated successfully"
	} else {
		err = h.svc.Create(ctx, tok, payload)
	}
	if err != nil {
		return view.APIFail(c, err, "Failed to save patient")
	}

	items, err := h.svc.Load(ctx, tok)
	if err != nil {
		return view.APIFail(c, err, "Failed to reload patients")
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
	p, err := h.svc.Get(apiclient.RequestContext(c), session.Token(c), id)
	if err != nil {
		return view.APIFail(c, err, "Failed to load patient data")
	}
	return c.HTML(http.StatusOK, string(RenderDeleteConfirm(p)))
}

// Delete issues the DELETE after confirmation and reloads the list.
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx, tok := apiclient.RequestContext(c), session.Token(c)
	if err := h.svc.Delete(ctx, tok, id); err != nil {
		return view.APIFail(c, err, "Failed to delete patient")
	}
	items, err := h.svc.Load(ctx, tok)
	if err != nil {
		return view.APIFail(c, err, "Failed to reload patients")
	}
	c.Response().Header().Set("X-Console-Modal", "close")
	return c.HTML(http.StatusOK, string(view.Banner(view.BannerSuccess, "Patient deleted successfully"))+string(RenderRows(items)))
}

// optional maps a blank form field to null.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
