package reports

import (
	"encoding/json"
	"html/template"

	"github.com/dentadmin/console/internal/view"
)

var sectionTmpl = view.MustParse("reports-section", `<div class="d-flex justify-content-between align-items-center mb-3">
  <h2><i class="fas fa-chart-pie me-2"></i>Reports</h2>
</div>
<div class="row mb-4" id="report-controls" data-report-url="/reports/data">
  <div class="col-md-4">
    <label class="form-label" for="report-start">Start Date</label>
    <input type="date" class="form-control" id="report-start" name="start_date" value="{{.Start}}">
  </div>
  <div class="col-md-4">
    <label class="form-label" for="report-end">End Date</label>
    <input type="date" class="form-control" id="report-end" name="end_date" value="{{.End}}">
  </div>
  <div class="col-md-4 d-flex align-items-end">
    <button class="btn btn-primary" data-generate-report><i class="fas fa-chart-column me-1"></i>Generate Reports</button>
  </div>
</div>
<div id="reports-content">{{.Content}}</div>`)

// RenderSection renders the reports section with the date controls and the
// given result area content.
func RenderSection(r Range, content template.HTML) template.HTML {
	return view.Render(sectionTmpl, struct {
		Start, End string
		Content    template.HTML
	}{r.Start, r.End, content})
}

// Intro is the initial result-area content before any range is chosen.
func Intro() template.HTML {
	return view.EmptyState("fa-chart-pie", "Select a date range and generate reports to see appointment, patient, and revenue statistics")
}

// chartCard feeds one card in the results grid. Dataset is the JSON the
// page script hands to Chart.js; it rides in a data attribute, so it stays
// a plain string and the template escapes its quotes.
type chartCard struct {
	Title    string
	CanvasID string
	Dataset  string
	Error    template.HTML
}

var resultsTmpl = view.MustParse("reports-results", `<div class="row">
{{- range .}}
  <div class="col-md-6 mb-4">
    <div class="card h-100">
      <div class="card-header">{{.Title}}</div>
      <div class="card-body">
        {{- if .Error}}
        {{.Error}}
        {{- else if .Dataset}}
        <canvas id="{{.CanvasID}}" data-chart="{{.Dataset}}"></canvas>
        {{- else}}
        <p class="text-muted text-center mb-0">No data for this period</p>
        {{- end}}
      </div>
    </div>
  </div>
{{- end}}
</div>`)

func datasetAttr(d Dataset) string {
	if d.Empty() {
		return ""
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return string(raw)
}

// RenderResults renders the six chart cards for a generated report. Failed
// fetches render their error inside the affected cards; empty datasets say
// so instead of plotting a blank chart.
func RenderResults(d *Data) template.HTML {
	cards := make([]chartCard, 0, 6)

	apptErr := template.HTML("")
	if d.AppointmentsErr != nil {
		apptErr = view.ErrorBanner(d.AppointmentsErr, "Failed to load the appointment report")
	}
	var byStatus, byTreatment, daily Dataset
	if d.Appointments != nil {
		byStatus = StatusDataset(d.Appointments.ByStatus)
		byTreatment = TreatmentDataset(d.Appointments.ByTreatment)
		daily = DailyDataset(d.Appointments.DailyCounts)
	}
	cards = append(cards,
		chartCard{Title: "Appointments by Status", CanvasID: "statusChart", Dataset: datasetAttr(byStatus), Error: apptErr},
		chartCard{Title: "Appointments by Treatment", CanvasID: "treatmentChart", Dataset: datasetAttr(byTreatment), Error: apptErr},
		chartCard{Title: "Daily Appointments", CanvasID: "dailyChart", Dataset: datasetAttr(daily), Error: apptErr},
	)

	revErr := template.HTML("")
	if d.RevenueErr != nil {
		revErr = view.ErrorBanner(d.RevenueErr, "Failed to load the revenue report")
	}
	var revenue Dataset
	if d.Revenue != nil {
		revenue = RevenueDataset(d.Revenue.ByTreatment)
	}
	cards = append(cards, chartCard{Title: "Revenue by Treatment", CanvasID: "revenueChart", Dataset: datasetAttr(revenue), Error: revErr})

	patErr := template.HTML("")
	if d.PatientsErr != nil {
		patErr = view.ErrorBanner(d.PatientsErr, "Failed to load the patient report")
	}
	var monthly, insurance Dataset
	if d.Patients != nil {
		monthly = MonthlyPatientsDataset(d.Patients.MonthlyNewPatients)
		insurance = InsuranceDataset(d.Patients.ByInsurance)
	}
	cards = append(cards,
		chartCard{Title: "New Patients by Month", CanvasID: "monthlyPatientsChart", Dataset: datasetAttr(monthly), Error: patErr},
		chartCard{Title: "Patients by Insurance", CanvasID: "insuranceChart", Dataset: datasetAttr(insurance), Error: patErr},
	)

	return view.Render(resultsTmpl, cards)
}
