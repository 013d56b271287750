package appointment

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/store"
)

// Filters narrow the appointment list. Both are forwarded to the backend
// query string; blank values are omitted.
type Filters struct {
	Date   string // YYYY-MM-DD
	Status string
}

func (f Filters) query() url.Values {
	q := url.Values{}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if len(q) == 0 {
		return nil
	}
	return q
}

// Service loads appointments from the backend and keeps the page-lifetime
// cache of the last listing.
type Service struct {
	api   *apiclient.Client
	cache *store.Cache[Appointment]
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, cache: store.NewCache[Appointment]()}
}

// Load fetches appointments matching the filters and replaces the cache
// wholesale. Filtering happens server-side.
func (s *Service) Load(ctx context.Context, token string, f Filters) ([]Appointment, error) {
	gen := s.cache.Begin()
	items := []Appointment{}
	if err := s.api.Get(ctx, token, "/appointments", f.query(), &items); err != nil {
		return nil, err
	}
	s.cache.Complete(gen, items)
	return items, nil
}

// Scheduled fetches every appointment still in scheduled status, bypassing
// the listing cache. Used for the upcoming-week window.
func (s *Service) Scheduled(ctx context.Context, token string) ([]Appointment, error) {
	items := []Appointment{}
	err := s.api.Get(ctx, token, "/appointments", Filters{Status: StatusScheduled}.query(), &items)
	return items, err
}

// ForDate fetches the appointments on one calendar date, bypassing the
// listing cache.
func (s *Service) ForDate(ctx context.Context, token, date string) ([]Appointment, error) {
	items := []Appointment{}
	err := s.api.Get(ctx, token, "/appointments", Filters{Date: date}.query(), &items)
	return items, err
}

// Cached returns the last-loaded listing.
func (s *Service) Cached() []Appointment {
	return s.cache.Items()
}

// Loaded reports whether any load has completed.
func (s *Service) Loaded() bool {
	return s.cache.Loaded()
}

// Get fetches a single appointment by id.
func (s *Service) Get(ctx context.Context, token string, id int64) (*Appointment, error) {
	var a Appointment
	if err := s.api.Get(ctx, token, fmt.Sprintf("/appointments/%d", id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create submits a new appointment.
func (s *Service) Create(ctx context.Context, token string, p Payload) error {
	if err := Validate(p); err != nil {
		return err
	}
	return s.api.Post(ctx, token, "/appointments", p, nil)
}

// Update submits changes to an existing appointment.
func (s *Service) Update(ctx context.Context, token string, id int64, p Payload) error {
	if err := Validate(p); err != nil {
		return err
	}
	return s.api.Put(ctx, token, fmt.Sprintf("/appointments/%d", id), p, nil)
}

// Delete removes an appointment.
func (s *Service) Delete(ctx context.Context, token string, id int64) error {
	return s.api.Delete(ctx, token, fmt.Sprintf("/appointments/%d", id))
}

// Validate enforces the required fields before any request is sent. The
// treatment stays optional; patient and date-time do not.
func Validate(p Payload) error {
	if p.PatientID <= 0 {
		return fmt.Errorf("patient is required")
	}
	if strings.TrimSpace(p.AppointmentDate) == "" {
		return fmt.Errorf("appointment date and time are required")
	}
	if !IsStatus(p.Status) {
		return fmt.Errorf("invalid status %q", p.Status)
	}
	if p.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return nil
}
