package appointment

import (
	"strings"
	"testing"

	"github.com/dentadmin/console/internal/domain/patient"
	"github.com/dentadmin/console/internal/domain/treatment"
)

func TestRenderRowsEmptyState(t *testing.T) {
	got := string(RenderRows(nil))
	if !strings.Contains(got, "No appointments found") {
		t.Errorf("empty listing must render the empty state, got: %s", got)
	}
}

func TestRenderRowsStatusStyling(t *testing.T) {
	rows := string(RenderRows([]Appointment{
		{ID: 1, PatientName: "Ana Reyes", AppointmentDate: "2026-08-29T09:00", DurationMinutes: 60, Status: StatusScheduled},
		{ID: 2, PatientName: "Charlee Vance", AppointmentDate: "2026-08-29T10:00", DurationMinutes: 30, Status: StatusNoShow},
	}))

	if !strings.Contains(rows, "bg-primary") {
		t.Errorf("scheduled row missing its badge class: %s", rows)
	}
	if !strings.Contains(rows, "bg-warning") {
		t.Errorf("no_show row missing its badge class: %s", rows)
	}
	// Enum underscores never reach the screen.
	if strings.Contains(rows, ">no_show<") {
		t.Errorf("status label not humanized: %s", rows)
	}
	if !strings.Contains(rows, ">no show<") {
		t.Errorf("expected humanized no show label: %s", rows)
	}
	// Missing treatment renders a dash.
	if !strings.Contains(rows, "<td>-</td>") {
		t.Errorf("absent treatment must render a dash: %s", rows)
	}
}

func TestRenderFormDefaults(t *testing.T) {
	patients := []patient.Patient{{ID: 3, FirstName: "Ana", LastName: "Reyes", Phone: "555-0100"}}
	treatments := []treatment.Treatment{{ID: 1, Name: "Cleaning", DurationMinutes: 30, IsActive: true}}

	form := string(RenderForm(nil, patients, treatments))

	if !strings.Contains(form, `value="60"`) {
		t.Errorf("create form must default duration to 60: %s", form)
	}
	if !strings.Contains(form, `value="scheduled" selected`) {
		t.Errorf("create form must default status to scheduled: %s", form)
	}
	if !strings.Contains(form, `<option value="">None</option>`) {
		t.Errorf("treatment must be optional: %s", form)
	}
	if !strings.Contains(form, `data-duration="30"`) {
		t.Errorf("treatment options must carry their default duration: %s", form)
	}
	if !strings.Contains(form, "Ana Reyes") {
		t.Errorf("patient dropdown not populated: %s", form)
	}
}

func TestRenderFormEditSelections(t *testing.T) {
	tt := "Cleaning"
	a := &Appointment{ID: 9, PatientID: 3, AppointmentDate: "2026-08-29T09:00", TreatmentType: &tt, DurationMinutes: 45, Status: StatusCompleted}
	patients := []patient.Patient{
		{ID: 2, FirstName: "Bo", LastName: "Lin", Phone: "555-0101"},
		{ID: 3, FirstName: "Ana", LastName: "Reyes", Phone: "555-0100"},
	}
	treatments := []treatment.Treatment{{ID: 1, Name: "Cleaning", DurationMinutes: 30, IsActive: true}}

	form := string(RenderForm(a, patients, treatments))

	if !strings.Contains(form, `value="3" selected`) {
		t.Errorf("edit form must preselect the patient: %s", form)
	}
	if !strings.Contains(form, `value="Cleaning" data-duration="30" selected`) {
		t.Errorf("edit form must preselect the treatment: %s", form)
	}
	if !strings.Contains(form, `value="completed" selected`) {
		t.Errorf("edit form must preselect the status: %s", form)
	}
	if !strings.Contains(form, `value="45"`) {
		t.Errorf("edit form must keep the stored duration, not the treatment default: %s", form)
	}
}
