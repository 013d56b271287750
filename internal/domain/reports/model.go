// Package reports fetches the backend's reporting endpoints and turns them
// into chart-ready datasets rendered as canvas fragments.
package reports

import (
	"fmt"

	"github.com/dentadmin/console/internal/view"
)

// AppointmentReport is the backend's appointment breakdown for a date range.
type AppointmentReport struct {
	ByStatus    []StatusCount    `json:"by_status"`
	ByTreatment []TreatmentCount `json:"by_treatment"`
	DailyCounts []DailyCount     `json:"daily_counts"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type TreatmentCount struct {
	TreatmentType *string `json:"treatment_type"`
	Count         int     `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PatientReport is the backend's patient statistics. It takes no date range.
type PatientReport struct {
	MonthlyNewPatients []MonthlyCount   `json:"monthly_new_patients"`
	ByInsurance        []InsuranceCount `json:"by_insurance"`
}

type MonthlyCount struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

type InsuranceCount struct {
	InsuranceProvider string `json:"insurance_provider"`
	Count             int    `json:"count"`
}

// RevenueReport is the backend's revenue breakdown over completed
// appointments in a date range.
type RevenueReport struct {
	ByTreatment  []TreatmentRevenue `json:"by_treatment"`
	DailyRevenue []DailyRevenue     `json:"daily_revenue"`
}

type TreatmentRevenue struct {
	TreatmentType    *string `json:"treatment_type"`
	AppointmentCount int     `json:"appointment_count"`
	TotalRevenue     float64 `json:"total_revenue"`
}

type DailyRevenue struct {
	Date             string  `json:"date"`
	AppointmentCount int     `json:"appointment_count"`
	Revenue          float64 `json:"revenue"`
}

// Dataset is what a chart canvas consumes, embedded as JSON in the fragment.
type Dataset struct {
	Type   string    `json:"type"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Empty reports whether the dataset has nothing to plot.
func (d Dataset) Empty() bool {
	return len(d.Values) == 0
}

func treatmentLabel(t *string) string {
	if t == nil || *t == "" {
		return "Unspecified"
	}
	return *t
}

// StatusDataset builds the doughnut breakdown of appointments by status.
func StatusDataset(counts []StatusCount) Dataset {
	d := Dataset{Type: "doughnut"}
	for _, c := range counts {
		d.Labels = append(d.Labels, view.StatusLabel(c.Status))
		d.Values = append(d.Values, float64(c.Count))
	}
	return d
}

// TreatmentDataset builds the bar breakdown of appointments by treatment.
func TreatmentDataset(counts []TreatmentCount) Dataset {
	d := Dataset{Type: "bar"}
	for _, c := range counts {
		d.Labels = append(d.Labels, treatmentLabel(c.TreatmentType))
		d.Values = append(d.Values, float64(c.Count))
	}
	return d
}

// DailyDataset builds the line trend of appointments per day.
func DailyDataset(counts []DailyCount) Dataset {
	d := Dataset{Type: "line"}
	for _, c := range counts {
		d.Labels = append(d.Labels, c.Date)
		d.Values = append(d.Values, float64(c.Count))
	}
	return d
}

// RevenueDataset builds the bar breakdown of revenue by treatment.
func RevenueDataset(rows []TreatmentRevenue) Dataset {
	d := Dataset{Type: "bar"}
	for _, r := range rows {
		d.Labels = append(d.Labels, treatmentLabel(r.TreatmentType))
		d.Values = append(d.Values, r.TotalRevenue)
	}
	return d
}

// MonthlyPatientsDataset builds the line trend of new patients per month.
func MonthlyPatientsDataset(rows []MonthlyCount) Dataset {
	d := Dataset{Type: "line"}
	for _, r := range rows {
		d.Labels = append(d.Labels, fmt.Sprintf("%04d-%02d", r.Year, r.Month))
		d.Values = append(d.Values, float64(r.Count))
	}
	return d
}

// InsuranceDataset builds the doughnut breakdown of patients by insurance
// provider.
func InsuranceDataset(rows []InsuranceCount) Dataset {
	d := Dataset{Type: "doughnut"}
	for _, r := range rows {
		label := r.InsuranceProvider
		if label == "" {
			label = "No Insurance"
		}
		d.Labels = append(d.Labels, label)
		d.Values = append(d.Values, float64(r.Count))
	}
	return d
}
