package appointment

import (
	"html/template"

	"github.com/dentadmin/console/internal/domain/patient"
	"github.com/dentadmin/console/internal/domain/treatment"
	"github.com/dentadmin/console/internal/view"
)

var sectionTmpl = view.MustParse("appointments-section", `<div class="d-flex justify-content-between align-items-center mb-3">
  <h2><i class="fas fa-calendar-check me-2"></i>Appointments</h2>
  <button class="btn btn-primary" data-form-url="/appointments/form"><i class="fas fa-plus me-1"></i>Add Appointment</button>
</div>
<div class="row mb-3" id="appointment-filters" data-rows-url="/appointments/rows">
  <div class="col-md-4">
    <input type="date" class="form-control" name="date" value="{{.Filters.Date}}">
  </div>
  <div class="col-md-4">
    <select class="form-select" name="status">
      <option value="">All statuses</option>
      {{- range .Statuses}}
      <option value="{{.}}"{{if eq . $.Filters.Status}} selected{{end}}>{{statusLabel .}}</option>
      {{- end}}
    </select>
  </div>
  <div class="col-md-4">
    <button class="btn btn-outline-secondary" data-clear-filters>Clear</button>
  </div>
</div>
<table class="table table-hover" id="appointments-table">
  <thead><tr><th>Date &amp; Time</th><th>Patient</th><th>Treatment</th><th>Duration</th><th>Status</th><th>Actions</th></tr></thead>
  <tbody>{{.Rows}}</tbody>
</table>`)

type rowData struct {
	Appointment
	BadgeClass string
}

var rowsTmpl = view.MustParse("appointments-rows", `{{- range .}}
<tr>
  <td>{{fmtDateTime .AppointmentDate}}</td>
  <td>{{.PatientName}}</td>
  <td>{{orDash .TreatmentType}}</td>
  <td>{{.DurationMinutes}} min</td>
  <td><span class="badge {{.BadgeClass}}">{{statusLabel .Status}}</span></td>
  <td>
    <button class="btn btn-sm btn-outline-primary me-1" data-form-url="/appointments/{{.ID}}/form"><i class="fas fa-edit"></i></button>
    <button class="btn btn-sm btn-outline-danger" data-confirm-url="/appointments/{{.ID}}/confirm-delete"><i class="fas fa-trash"></i></button>
  </td>
</tr>
{{- end}}`)

// RenderSection renders the whole appointments section with the filter bar
// reflecting the active filters.
func RenderSection(appointments []Appointment, f Filters) template.HTML {
	return view.Render(sectionTmpl, struct {
		Rows     template.HTML
		Filters  Filters
		Statuses []string
	}{RenderRows(appointments), f, Statuses})
}

// RenderRows renders the table body, or the defined empty state.
func RenderRows(appointments []Appointment) template.HTML {
	if len(appointments) == 0 {
		return `<tr><td colspan="6" class="text-center">No appointments found</td></tr>`
	}
	rows := make([]rowData, len(appointments))
	for i, a := range appointments {
		rows[i] = rowData{Appointment: a, BadgeClass: StatusBadgeClass(a.Status)}
	}
	return view.Render(rowsTmpl, rows)
}

var formTmpl = view.MustParse("appointment-form", `<form id="appointmentForm" method="post" action="/appointments/save" data-modal-title="{{if .Appt.ID}}Edit Appointment{{else}}Add Appointment{{end}}">
  <input type="hidden" name="id" value="{{if .Appt.ID}}{{.Appt.ID}}{{end}}">
  <div class="mb-3">
    <label class="form-label" for="appt-patient">Patient *</label>
    <select class="form-select" id="appt-patient" name="patient_id" required>
      <option value="">Select a patient...</option>
      {{- range .Patients}}
      <option value="{{.ID}}"{{if eq .ID $.Appt.PatientID}} selected{{end}}>{{.FullName}}</option>
      {{- end}}
    </select>
  </div>
  <div class="row">
    <div class="col-md-6 mb-3">
      <label class="form-label" for="appt-date">Date &amp; Time *</label>
      <input type="datetime-local" class="form-control" id="appt-date" name="appointment_date" value="{{.Appt.AppointmentDate}}" required>
    </div>
    <div class="col-md-6 mb-3">
      <label class="form-label" for="appt-duration">Duration (minutes)</label>
      <input type="number" class="form-control" id="appt-duration" name="duration_minutes" min="5" step="5" value="{{if .Appt.DurationMinutes}}{{.Appt.DurationMinutes}}{{else}}60{{end}}">
    </div>
  </div>
  <div class="mb-3">
    <label class="form-label" for="appt-treatment">Treatment</label>
    <select class="form-select" id="appt-treatment" name="treatment_type" data-duration-target="appt-duration">
      <option value="">None</option>
      {{- range .Treatments}}
      <option value="{{.Name}}" data-duration="{{.DurationMinutes}}"{{if eq .Name (orBlank $.Appt.TreatmentType)}} selected{{end}}>{{.Name}}</option>
      {{- end}}
    </select>
  </div>
  <div class="mb-3">
    <label class="form-label" for="appt-status">Status</label>
    <select class="form-select" id="appt-status" name="status">
      {{- range .Statuses}}
      <option value="{{.}}"{{if eq . $.Status}} selected{{end}}>{{statusLabel .}}</option>
      {{- end}}
    </select>
  </div>
  <div class="mb-3">
    <label class="form-label" for="appt-notes">Notes</label>
    <textarea class="form-control" id="appt-notes" name="notes" rows="2">{{orBlank .Appt.Notes}}</textarea>
  </div>
  <button type="submit" class="btn btn-primary">Save Appointment</button>
</form>`)

// RenderForm renders the create/edit form with patient and active-treatment
// dropdowns. Treatment options carry their default duration so selecting one
// prefills the editable duration field. A nil appointment yields the reset
// create form: duration 60, status scheduled.
func RenderForm(a *Appointment, patients []patient.Patient, treatments []treatment.Treatment) template.HTML {
	if a == nil {
		a = &Appointment{}
	}
	status := a.Status
	if status == "" {
		status = StatusScheduled
	}
	return view.Render(formTmpl, struct {
		Appt       *Appointment
		Patients   []patient.Patient
		Treatments []treatment.Treatment
		Statuses   []string
		Status     string
	}{a, patients, treatments, Statuses, status})
}

var confirmTmpl = view.MustParse("appointment-confirm", `<div class="confirm-dialog" data-modal-title="Delete Appointment">
  <p>Are you sure you want to delete the appointment for <strong>{{.PatientName}}</strong> on {{fmtDateTime .AppointmentDate}}?</p>
  <form method="post" action="/appointments/{{.ID}}/delete" class="d-inline"><button type="submit" class="btn btn-danger">Delete</button></form>
  <button type="button" class="btn btn-secondary" data-bs-dismiss="modal">Cancel</button>
</div>`)

// RenderDeleteConfirm renders the explicit confirmation step required before
// any DELETE is issued.
func RenderDeleteConfirm(a *Appointment) template.HTML {
	return view.Render(confirmTmpl, a)
}
