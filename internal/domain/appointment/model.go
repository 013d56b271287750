package appointment

// Appointment statuses as the backend stores them.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// Statuses in dropdown order.
var Statuses = []string{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}

// IsStatus reports whether s is a known status value.
func IsStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// StatusBadgeClass maps a status to its badge styling.
func StatusBadgeClass(status string) string {
	switch status {
	case StatusScheduled:
		return "bg-primary"
	case StatusCompleted:
		return "bg-success"
	case StatusCancelled:
		return "bg-secondary"
	case StatusNoShow:
		return "bg-warning text-dark"
	default:
		return "bg-light text-dark"
	}
}

// Appointment mirrors the backend's appointment representation. The backend
// flattens the patient's name into patient_name; appointment_date is local
// time in the form YYYY-MM-DDTHH:MM.
type Appointment struct {
	ID              int64   `json:"id"`
	PatientID       int64   `json:"patient_id"`
	PatientName     string  `json:"patient_name"`
	AppointmentDate string  `json:"appointment_date"`
	TreatmentType   *string `json:"treatment_type"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
	CreatedAt       *string `json:"created_at"`
}

// Payload is the request body for creates and updates. The treatment is
// optional; blank optionals are sent as explicit null.
type Payload struct {
	PatientID       int64   `json:"patient_id"`
	AppointmentDate string  `json:"appointment_date"`
	TreatmentType   *string `json:"treatment_type"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
}
