package view

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Section is one top-level view of the console.
type Section struct {
	Name  string
	Label string
	Icon  string
}

// Sections in navigation order. Dashboard is the initial section.
var Sections = []Section{
	{Name: "dashboard", Label: "Dashboard", Icon: "fa-chart-line"},
	{Name: "patients", Label: "Patients", Icon: "fa-users"},
	{Name: "appointments", Label: "Appointments", Icon: "fa-calendar-check"},
	{Name: "treatments", Label: "Treatments", Icon: "fa-tooth"},
	{Name: "reports", Label: "Reports", Icon: "fa-chart-pie"},
	{Name: "users", Label: "Users", Icon: "fa-user-gear"},
}

// IsSection reports whether name is a known section.
func IsSection(name string) bool {
	for _, s := range Sections {
		if s.Name == name {
			return true
		}
	}
	return false
}

// SectionFunc loads a section's data and renders its fragment.
type SectionFunc func(c echo.Context) (template.HTML, error)

// Controller routes navigation actions: it resolves the target section from
// the request (never from ambient state), re-renders the navigation with the
// target marked active, and invokes that section's load function.
type Controller struct {
	sections map[string]SectionFunc
}

func NewController() *Controller {
	return &Controller{sections: make(map[string]SectionFunc)}
}

// Register binds a section name to its load-and-render function.
func (ct *Controller) Register(name string, fn SectionFunc) {
	ct.sections[name] = fn
}

// RegisterRoutes mounts the page and section fragment routes.
func (ct *Controller) RegisterRoutes(g *echo.Group) {
	g.GET("/", ct.Index)
	g.GET("/sections/:name", ct.ShowSection)
}

// Index serves the page skeleton with the dashboard section active.
func (ct *Controller) Index(c echo.Context) error {
	return ct.renderPage(c, "dashboard")
}

// ShowSection handles a navigation action targeting one named section.
func (ct *Controller) ShowSection(c echo.Context) error {
	name := c.Param("name")
	if !IsSection(name) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown section")
	}
	if c.Request().Header.Get("X-Requested-With") != "" {
		// Fragment navigation: nav markup plus the section content.
		fragment, err := ct.loadSection(c, name)
		if err != nil {
			return APIFail(c, err, "Failed to load section")
		}
		return c.HTML(http.StatusOK, string(Nav(name))+string(fragment))
	}
	return ct.renderPage(c, name)
}

func (ct *Controller) loadSection(c echo.Context, name string) (template.HTML, error) {
	fn, ok := ct.sections[name]
	if !ok {
		return EmptyState("fa-circle-exclamation", "Section not available"), nil
	}
	return fn(c)
}

func (ct *Controller) renderPage(c echo.Context, active string) error {
	content, err := ct.loadSection(c, active)
	if err != nil {
		return APIFail(c, err, "Failed to load section")
	}
	page, err := RenderPage(active, content)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render page")
	}
	return c.HTML(http.StatusOK, page)
}

var navTmpl = MustParse("nav", `<ul class="navbar-nav" id="console-nav">
{{- range .Sections}}
  <li class="nav-item"><a class="nav-link{{if eq .Name $.Active}} active{{end}}" href="/sections/{{.Name}}" data-section="{{.Name}}"><i class="fas {{.Icon}} me-1"></i>{{.Label}}</a></li>
{{- end}}
</ul>`)

// Nav renders the navigation bar with the active entry marked.
func Nav(active string) template.HTML {
	var b strings.Builder
	if err := navTmpl.Execute(&b, struct {
		Sections []Section
		Active   string
	}{Sections, active}); err != nil {
		return ""
	}
	return template.HTML(b.String())
}
