// Package view holds the shared rendering pieces of the console UI: the
// template function set, notification banners, empty states, and the page
// skeleton with its section navigation.
package view

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Backend timestamp layouts, most specific first. The backend emits ISO
// timestamps; datetime-local form inputs submit minute precision.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses a backend timestamp string. ok is false for blank or
// unrecognized values so callers can degrade a single cell, not the row.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateTime renders a timestamp for list rows, e.g. "Jan 2, 2006 3:04 PM".
func FormatDateTime(s string) string {
	t, ok := ParseTime(s)
	if !ok {
		return "—"
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

// FormatTime renders just the clock time, e.g. "3:04 PM".
func FormatTime(s string) string {
	t, ok := ParseTime(s)
	if !ok {
		return "—"
	}
	return t.Format("3:04 PM")
}

// FormatDate renders just the calendar date, e.g. "Jan 2, 2006".
func FormatDate(s string) string {
	t, ok := ParseTime(s)
	if !ok {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// Money renders a price, or a dash for absent prices.
func Money(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *p)
}

// OrBlank unwraps an optional field for form population: absent values
// populate as the empty string.
func OrBlank(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// OrDash substitutes a dash for blank optional text.
func OrDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}

// Funcs is the shared template function set.
var Funcs = template.FuncMap{
	"fmtDateTime": FormatDateTime,
	"fmtTime":     FormatTime,
	"fmtDate":     FormatDate,
	"money":       Money,
	"orDash":      OrDash,
	"orBlank":     OrBlank,
	"statusLabel": StatusLabel,
}

// StatusLabel turns an enum value like "no_show" into "no show".
func StatusLabel(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}

// MustParse parses a fragment template with the shared function set.
func MustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(Funcs).Parse(text))
}

// Render executes a fragment template. Rendering failures surface as an
// inline error fragment instead of a broken page.
func Render(t *template.Template, data interface{}) template.HTML {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return Banner(BannerError, "Failed to render content")
	}
	return template.HTML(b.String())
}

// Banner kinds.
const (
	BannerSuccess = "success"
	BannerError   = "danger"
	BannerInfo    = "info"
)

var bannerTmpl = MustParse("banner", `<div class="notification alert alert-{{.Kind}} alert-dismissible" role="alert" data-auto-dismiss="4000">
  {{.Message}}
  <button type="button" class="btn-close" data-bs-dismiss="alert" aria-label="Close"></button>
</div>`)

// Banner renders a dismissible, auto-closing notification.
func Banner(kind, message string) template.HTML {
	var b strings.Builder
	// The banner template only interpolates escaped fields; an execute
	// error here means a programming bug, surfaced as plain text.
	if err := bannerTmpl.Execute(&b, struct{ Kind, Message string }{kind, message}); err != nil {
		return template.HTML(template.HTMLEscapeString(message))
	}
	return template.HTML(b.String())
}

var emptyStateTmpl = MustParse("empty-state", `<div class="empty-state"><i class="fas {{.Icon}}"></i><p>{{.Message}}</p></div>`)

// EmptyState renders the defined empty-collection markup.
func EmptyState(icon, message string) template.HTML {
	var b strings.Builder
	if err := emptyStateTmpl.Execute(&b, struct{ Icon, Message string }{icon, message}); err != nil {
		return template.HTML(template.HTMLEscapeString(message))
	}
	return template.HTML(b.String())
}
