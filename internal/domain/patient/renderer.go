package patient

import (
	"html/template"

	"github.com/dentadmin/console/internal/view"
)

var sectionTmpl = view.MustParse("patients-section", `<div class="d-flex justify-content-between align-items-center mb-3">
  <h2><i class="fas fa-users me-2"></i>Patients</h2>
  <button class="btn btn-primary" data-form-url="/patients/form"><i class="fas fa-plus me-1"></i>Add Patient</button>
</div>
<div class="mb-3">
  <input type="search" class="form-control" id="patient-search" data-rows-url="/patients/rows" placeholder="Search by name, phone, or email...">
</div>
<table class="table table-hover" id="patients-table">
  <thead><tr><th>Name</th><th>Email</th><th>Phone</th><th>Insurance</th><th>Actions</th></tr></thead>
  <tbody>{{.Rows}}</tbody>
</table>`)

var rowsTmpl = view.MustParse("patients-rows", `{{- range .}}
<tr>
  <td>{{.FullName}}</td>
  <td>{{orDash .Email}}</td>
  <td>{{.Phone}}</td>
  <td>{{orDash .InsuranceProvider}}</td>
  <td>
    <button class="btn btn-sm btn-outline-primary me-1" data-form-url="/patients/{{.ID}}/form"><i class="fas fa-edit"></i></button>
    <button class="btn btn-sm btn-outline-danger" data-confirm-url="/patients/{{.ID}}/confirm-delete"><i class="fas fa-trash"></i></button>
  </td>
</tr>
{{- end}}`)

// RenderSection renders the whole patients section for a collection.
func RenderSection(patients []Patient) template.HTML {
	return view.Render(sectionTmpl, struct{ Rows template.HTML }{RenderRows(patients)})
}

// RenderRows renders the table body: one row per patient, or the defined
// empty state when the collection is empty.
func RenderRows(patients []Patient) template.HTML {
	if len(patients) == 0 {
		return `<tr><td colspan="5" class="text-center">No patients found</td></tr>`
	}
	return view.Render(rowsTmpl, patients)
}

var formTmpl = view.MustParse("patient-form", `<form id="patientForm" method="post" action="/patients/save" data-modal-title="{{if .ID}}Edit Patient{{else}}Add Patient{{end}}">
  <input type="hidden" name="id" value="{{if .ID}}{{.ID}}{{end}}">
  <div class="row">
    <div class="col-md-6 mb-3">
      <label class="form-label" for="first-name">First Name *</label>
      <input type="text" class="form-control" id="first-name" name="first_name" value="{{.FirstName}}" required>
    </div>
    <div class="col-md-6 mb-3">
      <label class="form-label" for="last-name">Last Name *</label>
      <input type="text" class="form-control" id="last-name" name="last_name" value="{{.LastName}}" required>
    </div>
  </div>
  <div class="row">
    <div class="col-md-6 mb-3">
      <label class="form-label" for="email">Email</label>
      <input type="email" class="form-control" id="email" name="email" value="{{orBlank .Email}}">
    </div>
    <div class="col-md-6 mb-3">
      <label class="form-label" for="phone">Phone *</label>
      <input type="tel" class="form-control" id="phone" name="phone" value="{{.Phone}}" required>
    </div>
  </div>
  <div class="row">
    <div class="col-md-6 mb-3">
      <label class="form-label" for="date-of-birth">Date of Birth</label>
      <input type="date" class="form-control" id="date-of-birth" name="date_of_birth" value="{{orBlank .DateOfBirth}}">
    </div>
    <div class="col-md-6 mb-3">
      <label class="form-label" for="insurance-provider">Insurance Provider</label>
      <input type="text" class="form-control" id="insurance-provider" name="insurance_provider" value="{{orBlank .InsuranceProvider}}">
    </div>
  </div>
  <div class="row">
    <div class="col-md-6 mb-3">
      <label class="form-label" for="emergency-contact-name">Emergency Contact Name</label>
      <input type="text" class="form-control" id="emergency-contact-name" name="emergency_contact_name" value="{{orBlank .EmergencyContactName}}">
    </div>
    <div class="col-md-6 mb-3">
      <label class="form-label" for="emergency-contact-phone">Emergency Contact Phone</label>
      <input type="tel" class="form-control" id="emergency-contact-phone" name="emergency_contact_phone" value="{{orBlank .EmergencyContactPhone}}">
    </div>
  </div>
  <div class="mb-3">
    <label class="form-label" for="address">Address</label>
    <textarea class="form-control" id="address" name="address" rows="2">{{orBlank .Address}}</textarea>
  </div>
  <div class="mb-3">
    <label class="form-label" for="medical-history">Medical History</label>
    <textarea class="form-control" id="medical-history" name="medical_history" rows="3">{{orBlank .MedicalHistory}}</textarea>
  </div>
  <div class="mb-3">
    <label class="form-label" for="notes">Notes</label>
    <textarea class="form-control" id="notes" name="notes" rows="2">{{orBlank .Notes}}</textarea>
  </div>
  <button type="submit" class="btn btn-primary">Save Patient</button>
</form>`)

// RenderForm renders the create/edit form. A nil patient yields the reset
// create form with an empty hidden id.
func RenderForm(p *Patient) template.HTML {
	if p == nil {
		p = &Patient{}
	}
	return view.Render(formTmpl, p)
}

var confirmTmpl = view.MustParse("patient-confirm", `<div class="confirm-dialog" data-modal-title="Delete Patient">
  <p>Are you sure you want to delete <strong>{{.FullName}}</strong>? This will also delete all their appointments.</p>
  <form method="post" action="/patients/{{.ID}}/delete" class="d-inline"><button type="submit" class="btn btn-danger">Delete</button></form>
  <button type="button" class="btn btn-secondary" data-bs-dismiss="modal">Cancel</button>
</div>`)

// RenderDeleteConfirm renders the explicit confirmation step required before
// any DELETE is issued.
func RenderDeleteConfirm(p *Patient) template.HTML {
	return view.Render(confirmTmpl, p)
}
