package view

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newSectionContext(method, target string, fragment bool) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	if fragment {
		req.Header.Set("X-Requested-With", "console")
	} else {
		req.Header.Set("Accept", "text/html")
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func stubSection(content string) SectionFunc {
	return func(c echo.Context) (template.HTML, error) {
		return template.HTML(content), nil
	}
}

func TestShowSectionUnknownName(t *testing.T) {
	ct := NewController()
	c, _ := newSectionContext(http.MethodGet, "/sections/nope", true)
	c.SetParamNames("name")
	c.SetParamValues("nope")

	err := ct.ShowSection(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("err = %v, want 404 HTTPError", err)
	}
}

func TestShowSectionFragmentCarriesNav(t *testing.T) {
	ct := NewController()
	ct.Register("patients", stubSection("<p>patient content</p>"))

	c, rec := newSectionContext(http.MethodGet, "/sections/patients", true)
	c.SetParamNames("name")
	c.SetParamValues("patients")

	if err := ct.ShowSection(c); err != nil {
		t.Fatalf("ShowSection: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "patient content") {
		t.Errorf("missing section content: %s", body)
	}
	if !strings.Contains(body, `id="console-nav"`) {
		t.Errorf("fragment must include refreshed nav: %s", body)
	}
	// The requested section, and only it, is marked active.
	if !strings.Contains(body, `nav-link active" href="/sections/patients"`) {
		t.Errorf("patients entry not active: %s", body)
	}
	if strings.Contains(body, `nav-link active" href="/sections/dashboard"`) {
		t.Errorf("dashboard must not stay active: %s", body)
	}
}

func TestShowSectionPageLoad(t *testing.T) {
	ct := NewController()
	ct.Register("treatments", stubSection("<p>catalog</p>"))

	c, rec := newSectionContext(http.MethodGet, "/sections/treatments", false)
	c.SetParamNames("name")
	c.SetParamValues("treatments")

	if err := ct.ShowSection(c); err != nil {
		t.Fatalf("ShowSection: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") {
		t.Errorf("page load must render the full skeleton: %s", body[:100])
	}
	if !strings.Contains(body, "catalog") {
		t.Errorf("active section content missing: %s", body)
	}
	// Inactive sections are present but hidden.
	if !strings.Contains(body, `id="patients-section" style="display:none"`) {
		t.Errorf("inactive sections must be hidden placeholders: %s", body)
	}
}

func TestIndexDefaultsToDashboard(t *testing.T) {
	ct := NewController()
	ct.Register("dashboard", stubSection("<p>overview</p>"))

	c, rec := newSectionContext(http.MethodGet, "/", false)
	if err := ct.Index(c); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "overview") {
		t.Errorf("dashboard content missing: %s", rec.Body.String())
	}
}

func TestIsSection(t *testing.T) {
	for _, name := range []string{"dashboard", "patients", "appointments", "treatments", "reports", "users"} {
		if !IsSection(name) {
			t.Errorf("IsSection(%q) = false", name)
		}
	}
	if IsSection("settings") {
		t.Error(`IsSection("settings") = true`)
	}
}
