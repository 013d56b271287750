package appointment

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dentadmin/console/internal/domain/patient"
	"github.com/dentadmin/console/internal/domain/treatment"
	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/platform/session"
	"github.com/dentadmin/console/internal/view"
)

// Handler serves the appointments section. It leans on the patient and
// treatment services for the scheduling form's dropdowns.
type Handler struct {
	svc        *Service
	patients   *patient.Service
	treatments *treatment.Service
}

func NewHandler(svc *Service, patients *patient.Service, treatments *treatment.Service) *Handler {
	return &Handler{svc: svc, patients: patients, treatments: treatments}
}

// RegisterRoutes mounts the appointment fragment and form routes and binds
// the appointments section to the section controller.
func (h *Handler) RegisterRoutes(g *echo.Group, sections *view.Controller) {
	sections.Register("appointments", h.Section)

	g.GET("/appointments/rows", h.Rows)
	g.GET("/appointments/form", h.NewForm)
	g.GET("/appointments/:id/form", h.EditForm)
	g.POST("/appointments/save", h.Save)
	g.GET("/appointments/:id/confirm-delete", h.ConfirmDelete)
	g.POST("/appointments/:id/delete", h.Delete)
}

func filtersFrom(c echo.Context) Filters {
	f := Filters{
		Date:   strings.TrimSpace(c.QueryParam("date")),
		Status: strings.TrimSpace(c.QueryParam("status")),
	}
	if f.Status != "" && !IsStatus(f.Status) {
		f.Status = ""
	}
	return f
}

// Section loads the filtered listing and renders the full section. Load
// failures render the empty state with an error banner, never stale rows.
func (h *Handler) Section(c echo.Context) (template.HTML, error) {
	f := filtersFrom(c)
	items, err := h.svc.Load(apiclient.RequestContext(c), session.Token(c), f)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthenticated) {
			return "", err
		}
		return view.ErrorBanner(err, "Failed to load appointments") + RenderSection(nil, f), nil
	}
	return RenderSection(items, f), nil
}

// Rows serves the table body for the given filters. Filtering is
// server-side, so every filter change is a backend round trip.
func (h *Handler) Rows(c echo.Context) error {
	items, err := h.svc.Load(apiclient.RequestContext(c), session.Token(c), filtersFrom(c))
	if err != nil {
		return view.APIFail(c, err, "Failed to load appointments")
	}
	return c.HTML(http.StatusOK, string(RenderRows(items)))
}

// formOptions loads the dropdown collections for the scheduling form.
func (h *Handler) formOptions(ctx context.Context, token string) ([]patient.Patient, []treatment.Treatment, error) {
	pts := h.patients.Cached()
	if !h.patients.Loaded() {
		var err error
		if pts, err = h.patients.Load(ctx, token); err != nil {
			return nil, nil, err
		}
	}
	trs, err := h.treatments.Active(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return pts, trs, nil
}

// NewForm serves the reset scheduling form.
func (h *Handler) NewForm(c echo.Context) error {
	pts, trs, err := h.formOptions(apiclient.RequestContext(c), session.Token(c))
	if err != nil {
		return view.APIFail(c, err, "Failed to load form data")
	}
	return c.HTML(http.StatusOK, string(RenderForm(nil, pts, trs)))
}

// EditForm fetches the appointment and serves the populated edit form.
func (h *Handler) EditForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx, tok := apiclient.RequestContext(c), session.Token(c)
	a, err := h.svc.Get(ctx, tok, id)
	if err != nil {
		return view.APIFail(c, err, "Failed to load appointment data")
	}
	pts, trs, err := h.formOptions(ctx, tok)
	if err != nil {
		return view.APIFail(c, err, "Failed to load form data")
	}
	return c.HTML(http.StatusOK, string(RenderForm(a, pts, trs)))
}

// Save creates or updates an appointment depending on the hidden id field.
func (h *Handler) Save(c echo.Context) error {
	patientID, _ := strconv.ParseInt(strings.TrimSpace(c.FormValue("patient_id")), 10, 64)

	duration := 60
	if v := strings.TrimSpace(c.FormValue("duration_minutes")); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, "duration_minutes must be a number")))
		}
		duration = parsed
	}

	status := strings.TrimSpace(c.FormValue("status"))
	if status == "" {
		status = StatusScheduled
	}

	payload := Payload{
		PatientID:       patientID,
		AppointmentDate: strings.TrimSpace(c.FormValue("appointment_date")),
		TreatmentType:   optional(c.FormValue("treatment_type")),
		DurationMinutes: duration,
		Status:          status,
		Notes:           optional(c.FormValue("notes")),
	}

	if err := Validate(payload); err != nil {
		return c.HTML(http.StatusUnprocessableEntity, string(view.Banner(view.BannerError, err.Error())))
	}

	ctx, tok := apiclient.RequestContext(c), session.Token(c)
	idRaw := strings.TrimSpace(c.FormValue("id"))

	var err error
	message := "Appointment added successfully"
	if idRaw != "" {
		var id int64
		if id, err = strconv.ParseInt(idRaw, 10, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		err = h.svc.Update(ctx, tok, id, payload)
		message = "Appointment updated successfully"
	} else {
		err = h.svc.Create(ctx, tok, payload)
	}
	if err != nil {
		return view.APIFail(c, err, "Failed to save appointment")
	}

	items, err := h.svc.Load(ctx, tok, Filters{})
	if err != nil {
		return view.APIFail(c, err, "Failed to reload appointments")
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
	a, err := h.svc.Get(apiclient.RequestContext(c), session.Token(c), id)
	if err != nil {
		return view.APIFail(c, err, "Failed to load appointment data")
	}
	return c.HTML(http.StatusOK, string(RenderDeleteConfirm(a)))
}

// Delete issues the DELETE after confirmation and reloads the listing.
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx, tok := apiclient.RequestContext(c), session.Token(c)
	if err := h.svc.Delete(ctx, tok, id); err != nil {
		return view.APIFail(c, err, "Failed to delete appointment")
	}
	items, err := h.svc.Load(ctx, tok, Filters{})
	if err != nil {
		return view.APIFail(c, err, "Failed to reload appointments")
	}
	c.Response().Header().Set("X-Console-Modal", "close")
	return c.HTML(http.StatusOK, string(view.Banner(view.BannerSuccess, "Appointment deleted successfully"))+string(RenderRows(items)))
}

// optional maps a blank form field to null.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
