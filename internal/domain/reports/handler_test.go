package reports

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dentadmin/console/internal/platform/session"
)

func newContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("X-Requested-With", "console")
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("console_session", &session.Session{Token: "tok", UserID: 1, Username: "admin"})
	return c, rec
}

func TestDataRefusesMissingDatesWithoutFetching(t *testing.T) {
	backendHits := 0
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHits++
	}))
	h := NewHandler(svc)

	c, rec := newContext(t, "/reports/data?start_date=2026-08-01")
	if err := h.Data(c); err != nil {
		t.Fatalf("Data: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "both start and end dates") {
		t.Errorf("missing validation message: %s", rec.Body.String())
	}
	if backendHits != 0 {
		t.Errorf("missing dates must not trigger any request, got %d calls", backendHits)
	}
}

func TestSectionRendersIntroWithoutFetching(t *testing.T) {
	backendHits := 0
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHits++
	}))
	h := NewHandler(svc)

	c, _ := newContext(t, "/sections/reports")
	fragment, err := h.Section(c)
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if !strings.Contains(string(fragment), "Select a date range") {
		t.Errorf("missing intro notice: %s", fragment)
	}
	if backendHits != 0 {
		t.Errorf("opening the section must not fetch, got %d calls", backendHits)
	}
}
