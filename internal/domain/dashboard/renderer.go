package dashboard

import (
	"html/template"

	"github.com/dentadmin/console/internal/domain/appointment"
	"github.com/dentadmin/console/internal/view"
)

var statsTmpl = view.MustParse("dashboard-stats", `<div class="row mb-4" id="dashboard-stats">
  <div class="col-md-3"><div class="card text-center"><div class="card-body">
    <i class="fas fa-calendar-day fa-2x text-primary mb-2"></i>
    <h3>{{.TodayAppointments}}</h3><p class="text-muted mb-0">Today's Appointments</p>
  </div></div></div>
  <div class="col-md-3"><div class="card text-center"><div class="card-body">
    <i class="fas fa-calendar-week fa-2x text-info mb-2"></i>
    <h3>{{.WeekAppointments}}</h3><p class="text-muted mb-0">This Week</p>
  </div></div></div>
  <div class="col-md-3"><div class="card text-center"><div class="card-body">
    <i class="fas fa-users fa-2x text-success mb-2"></i>
    <h3>{{.TotalPatients}}</h3><p class="text-muted mb-0">Total Patients</p>
  </div></div></div>
  <div class="col-md-3"><div class="card text-center"><div class="card-body">
    <i class="fas fa-clock fa-2x text-warning mb-2"></i>
    <h3>{{.UpcomingAppointments}}</h3><p class="text-muted mb-0">Upcoming</p>
  </div></div></div>
</div>`)

var todayTmpl = view.MustParse("dashboard-today", `<ul class="list-group list-group-flush">
{{- range .}}
  <li class="list-group-item d-flex justify-content-between">
    <span><strong>{{fmtTime .AppointmentDate}}</strong> {{.PatientName}}</span>
    <span class="text-muted">{{orDash .TreatmentType}}</span>
  </li>
{{- end}}
</ul>`)

var upcomingTmpl = view.MustParse("dashboard-upcoming", `<ul class="list-group list-group-flush">
{{- range .}}
  <li class="list-group-item d-flex justify-content-between">
    <span><strong>{{fmtDateTime .AppointmentDate}}</strong> {{.PatientName}}</span>
    <span class="text-muted">{{orDash .TreatmentType}}</span>
  </li>
{{- end}}
</ul>`)

var sectionTmpl = view.MustParse("dashboard-section", `<h2 class="mb-3"><i class="fas fa-chart-line me-2"></i>Dashboard</h2>
{{.StatsCard}}
<div class="row">
  <div class="col-md-6">
    <div class="card mb-4">
      <div class="card-header"><i class="fas fa-calendar-day me-2"></i>Today's Appointments</div>
      <div class="card-body p-0">{{.TodayCard}}</div>
    </div>
  </div>
  <div class="col-md-6">
    <div class="card mb-4">
      <div class="card-header"><i class="fas fa-forward me-2"></i>Upcoming This Week</div>
      <div class="card-body p-0">{{.UpcomingCard}}</div>
    </div>
  </div>
</div>`)

// RenderSection assembles the dashboard. Each card renders its own content
// or its own error state; one failed card leaves the others intact.
func RenderSection(d *Data) template.HTML {
	var stats template.HTML
	switch {
	case d.StatsErr != nil:
		stats = view.ErrorBanner(d.StatsErr, "Failed to load statistics")
	case d.Stats != nil:
		stats = view.Render(statsTmpl, d.Stats)
	}

	return view.Render(sectionTmpl, struct {
		StatsCard    template.HTML
		TodayCard    template.HTML
		UpcomingCard template.HTML
	}{
		StatsCard:    stats,
		TodayCard:    renderList(d.Today, d.TodayErr, todayTmpl, "No appointments today"),
		UpcomingCard: renderList(d.Upcoming, d.UpcomingErr, upcomingTmpl, "No upcoming appointments"),
	})
}

func renderList(items []appointment.Appointment, err error, tmpl *template.Template, emptyMsg string) template.HTML {
	if err != nil {
		return view.ErrorBanner(err, "Failed to load appointments")
	}
	if len(items) == 0 {
		return view.EmptyState("fa-calendar-xmark", emptyMsg)
	}
	return view.Render(tmpl, items)
}
