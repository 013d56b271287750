package patient

import "strings"

// Patient mirrors the backend's patient representation. Optional columns are
// pointers so absent values survive the round trip as null.
type Patient struct {
	ID                    int64   `json:"id"`
	FirstName             string  `json:"first_name"`
	LastName              string  `json:"last_name"`
	Email                 *string `json:"email"`
	Phone                 string  `json:"phone"`
	DateOfBirth           *string `json:"date_of_birth"`
	Address               *string `json:"address"`
	MedicalHistory        *string `json:"medical_history"`
	InsuranceProvider     *string `json:"insurance_provider"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	Notes                 *string `json:"notes"`
	CreatedAt             *string `json:"created_at"`
}

// FullName joins the patient's first and last names for display.
func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Payload is the request body for creates and updates. Blank optional fields
// are sent as explicit null, never as empty strings.
type Payload struct {
	FirstName             string  `json:"first_name"`
	LastName              string  `json:"last_name"`
	Email                 *string `json:"email"`
	Phone                 string  `json:"phone"`
	DateOfBirth           *string `json:"date_of_birth"`
	Address               *string `json:"address"`
	MedicalHistory        *string `json:"medical_history"`
	InsuranceProvider     *string `json:"insurance_provider"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	Notes                 *string `json:"notes"`
}

// Matches reports whether the patient matches a client-side search query:
// case-insensitive substring on first name, last name, phone, or email.
func (p *Patient) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.FirstName), q) ||
		strings.Contains(strings.ToLower(p.LastName), q) ||
		strings.Contains(strings.ToLower(p.Phone), q) {
		return true
	}
	return p.Email != nil && strings.Contains(strings.ToLower(*p.Email), q)
}
