package view

import (
	"html/template"
	"strings"
)

var pageTmpl = template.Must(template.New("page").Funcs(Funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Dental Office Management</title>
  <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet">
  <link href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.0.0/css/all.min.css" rel="stylesheet">
  <link href="/static/console.css" rel="stylesheet">
</head>
<body>
  <nav class="navbar navbar-expand-lg navbar-dark bg-primary">
    <div class="container-fluid">
      <a class="navbar-brand" href="/"><i class="fas fa-tooth me-2"></i>Dental Office Management</a>
      {{.Nav}}
      <div class="d-flex">
        <form method="post" action="/logout"><button class="btn btn-outline-light btn-sm" type="submit"><i class="fas fa-sign-out-alt me-1"></i>Sign out</button></form>
      </div>
    </div>
  </nav>
  <div id="notifications" class="notification-area"></div>
  <main class="container-fluid py-3">
  {{- range .Sections}}
    <div class="section" id="{{.Name}}-section"{{if ne .Name $.Active}} style="display:none"{{end}}>
      {{- if eq .Name $.Active}}
      {{$.Content}}
      {{- end}}
    </div>
  {{- end}}
  </main>
  <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/js/bootstrap.bundle.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.0/dist/chart.umd.min.js"></script>
  <script src="/static/console.js"></script>
</body>
</html>`))

// RenderPage renders the fixed page skeleton: navigation, one container per
// section, and the active section's content.
func RenderPage(active string, content template.HTML) (string, error) {
	var b strings.Builder
	err := pageTmpl.Execute(&b, struct {
		Nav      template.HTML
		Sections []Section
		Active   string
		Content  template.HTML
	}{Nav(active), Sections, active, content})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
