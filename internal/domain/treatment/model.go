package treatment

// Treatment mirrors the backend's treatment catalog entry.
type Treatment struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price"`
	IsActive        bool     `json:"is_active"`
	CreatedAt       *string  `json:"created_at"`
}

// Payload is the request body for creates and updates. Blank optional fields
// are sent as explicit null.
type Payload struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price"`
	IsActive        bool     `json:"is_active"`
}
