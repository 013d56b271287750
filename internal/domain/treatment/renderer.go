package treatment

import (
	"html/template"

	"github.com/dentadmin/console/internal/view"
)

var sectionTmpl = view.MustParse("treatments-section", `<div class="d-flex justify-content-between align-items-center mb-3">
  <h2><i class="fas fa-tooth me-2"></i>Treatments</h2>
  <button class="btn btn-primary" data-form-url="/treatments/form"><i class="fas fa-plus me-1"></i>Add Treatment</button>
</div>
<table class="table table-hover" id="treatments-table">
  <thead><tr><th>Name</th><th>Description</th><th>Duration</th><th>Price</th><th>Status</th><th>Actions</th></tr></thead>
  <tbody>{{.Rows}}</tbody>
</table>`)

var rowsTmpl = view.MustParse("treatments-rows", `{{- range .}}
<tr>
  <td>{{.Name}}</td>
  <td>{{orDash .Description}}</td>
  <td>{{.DurationMinutes}} min</td>
  <td>{{money .Price}}</td>
  <td>{{if .IsActive}}<span class="badge bg-success">Active</span>{{else}}<span class="badge bg-secondary">Inactive</span>{{end}}</td>
  <td>
    <button class="btn btn-sm btn-outline-primary me-1" data-form-url="/treatments/{{.ID}}/form"><i class="fas fa-edit"></i></button>
    <button class="btn btn-sm btn-outline-danger" data-confirm-url="/treatments/{{.ID}}/confirm-delete"><i class="fas fa-trash"></i></button>
  </td>
</tr>
{{- end}}`)

// RenderSection renders the whole treatments section for a collection.
func RenderSection(treatments []Treatment) template.HTML {
	return view.Render(sectionTmpl, struct{ Rows template.HTML }{RenderRows(treatments)})
}

// RenderRows renders the table body, or the defined empty state.
func RenderRows(treatments []Treatment) template.HTML {
	if len(treatments) == 0 {
		return `<tr><td colspan="6" class="text-center">No treatments found</td></tr>`
	}
	return view.Render(rowsTmpl, treatments)
}

var formTmpl = view.MustParse("treatment-form", `<form id="treatmentForm" method="post" action="/treatments/save" data-modal-title="{{if .ID}}Edit Treatment{{else}}Add Treatment{{end}}">
  <input type="hidden" name="id" value="{{if .ID}}{{.ID}}{{end}}">
  <div class="mb-3">
    <label class="form-label" for="treatment-name">Name *</label>
    <input type="text" class="form-control" id="treatment-name" name="name" value="{{.Name}}" required>
  </div>
  <div class="mb-3">
    <label class="form-label" for="treatment-description">Description</label>
    <textarea class="form-control" id="treatment-description" name="description" rows="2">{{orBlank .Description}}</textarea>
  </div>
  <div class="row">
    <div class="col-md-6 mb-3">
      <label class="form-label" for="treatment-duration">Duration (minutes) *</label>
      <input type="number" class="form-control" id="treatment-duration" name="duration_minutes" min="5" step="5" value="{{if .DurationMinutes}}{{.DurationMinutes}}{{else}}30{{end}}" required>
    </div>
    <div class="col-md-6 mb-3">
      <label class="form-label" for="treatment-price">Price ($)</label>
      <input type="number" class="form-control" id="treatment-price" name="price" min="0" step="0.01" value="{{with .Price}}{{.}}{{end}}">
    </div>
  </div>
  <div class="form-check mb-3">
    <input type="checkbox" class="form-check-input" id="treatment-active" name="is_active" value="true"{{if or .IsActive (not .ID)}} checked{{end}}>
    <label class="form-check-label" for="treatment-active">Active</label>
  </div>
  <button type="submit" class="btn btn-primary">Save Treatment</button>
</form>`)

// RenderForm renders the create/edit form. A nil treatment yields the reset
// create form with duration 30 and active checked.
func RenderForm(t *Treatment) template.HTML {
	if t == nil {
		t = &Treatment{}
	}
	return view.Render(formTmpl, t)
}

var confirmTmpl = view.MustParse("treatment-confirm", `<div class="confirm-dialog" data-modal-title="Delete Treatment">
  <p>Are you sure you want to delete <strong>{{.Name}}</strong>?</p>
  <form method="post" action="/treatments/{{.ID}}/delete" class="d-inline"><button type="submit" class="btn btn-danger">Delete</button></form>
  <button type="button" class="btn btn-secondary" data-bs-dismiss="modal">Cancel</button>
</div>`)

// RenderDeleteConfirm renders the explicit confirmation step required before
// any DELETE is issued.
func RenderDeleteConfirm(t *Treatment) template.HTML {
	return view.Render(confirmTmpl, t)
}
