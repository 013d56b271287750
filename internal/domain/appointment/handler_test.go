package appointment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dentadmin/console/internal/platform/session"
)

func newFormContext(t *testing.T, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-Requested-With", "console")
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("console_session", &session.Session{Token: "tok", UserID: 1, Username: "admin"})
	return c, rec
}

func TestSaveBlocksMissingPatient(t *testing.T) {
	backendHits := 0
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHits++
	}))
	h := NewHandler(svc, nil, nil)

	form := url.Values{}
	form.Set("appointment_date", "2026-08-29T09:00")

	c, rec := newFormContext(t, http.MethodPost, "/appointments/save", form)
	if err := h.Save(c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "patient is required") {
		t.Errorf("missing validation message: %s", rec.Body.String())
	}
	if backendHits != 0 {
		t.Errorf("invalid form must not reach the backend, got %d calls", backendHits)
	}
}

func TestSaveWithoutTreatmentSendsNull(t *testing.T) {
	var body map[string]json.RawMessage
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":1}`))
			return
		}
		json.NewEncoder(w).Encode([]Appointment{})
	}))
	h := NewHandler(svc, nil, nil)

	form := url.Values{}
	form.Set("patient_id", "3")
	form.Set("appointment_date", "2026-08-29T09:00")
	form.Set("treatment_type", "")

	c, rec := newFormContext(t, http.MethodPost, "/appointments/save", form)
	if err := h.Save(c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if string(body["treatment_type"]) != "null" {
		t.Errorf("treatment_type = %s, want null", body["treatment_type"])
	}
	if string(body["duration_minutes"]) != "60" {
		t.Errorf("duration_minutes = %s, want the 60 default", body["duration_minutes"])
	}
	if string(body["status"]) != `"scheduled"` {
		t.Errorf("status = %s, want scheduled default", body["status"])
	}
	if rec.Header().Get("X-Console-Modal") != "close" {
		t.Error("successful save must close the modal")
	}
}

func TestRowsForwardsFilters(t *testing.T) {
	var query url.Values
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		json.NewEncoder(w).Encode([]Appointment{})
	}))
	h := NewHandler(svc, nil, nil)

	c, rec := newFormContext(t, http.MethodGet, "/appointments/rows?date=2026-08-28&status=completed", nil)
	if err := h.Rows(c); err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if query.Get("date") != "2026-08-28" || query.Get("status") != "completed" {
		t.Errorf("filters not forwarded, got %v", query)
	}
	if !strings.Contains(rec.Body.String(), "No appointments found") {
		t.Errorf("empty result must render empty state: %s", rec.Body.String())
	}
}

func TestRowsDropsUnknownStatusFilter(t *testing.T) {
	var query url.Values
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		json.NewEncoder(w).Encode([]Appointment{})
	}))
	h := NewHandler(svc, nil, nil)

	c, _ := newFormContext(t, http.MethodGet, "/appointments/rows?status=bogus", nil)
	if err := h.Rows(c); err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if query.Get("status") != "" {
		t.Errorf("unknown status must not be forwarded, got %q", query.Get("status"))
	}
}
