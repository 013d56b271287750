package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/store"
)

// Service loads patients from the backend and keeps the page-lifetime cache
// that client-side search filters without another round trip.
type Service struct {
	api   *apiclient.Client
	cache *store.Cache[Patient]
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, cache: store.NewCache[Patient]()}
}

// Load fetches the patient collection and replaces the cache wholesale.
// A reload overtaken by a newer one leaves the cache untouched.
func (s *Service) Load(ctx context.Context, token string) ([]Patient, error) {
	gen := s.cache.Begin()
	items := []Patient{}
	if err := s.api.Get(ctx, token, "/patients", nil, &items); err != nil {
		return nil, err
	}
	s.cache.Complete(gen, items)
	return items, nil
}

// Cached returns the last-loaded collection.
func (s *Service) Cached() []Patient {
	return s.cache.Items()
}

// Loaded reports whether any load has completed.
func (s *Service) Loaded() bool {
	return s.cache.Loaded()
}

// Search filters the cached collection client-side. An empty query restores
// the full cached list.
func (s *Service) Search(query string) []Patient {
	all := s.cache.Items()
	if strings.TrimSpace(query) == "" {
		return all
	}
	matched := []Patient{}
	for _, p := range all {
		if p.Matches(query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Get fetches a single patient by id.
func (s *Service) Get(ctx context.Context, token string, id int64) (*Patient, error) {
	var p Patient
	if err := s.api.Get(ctx, token, fmt.Sprintf("/patients/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create submits a new patient.
func (s *Service) Create(ctx context.Context, token string, p Payload) error {
	if err := Validate(p); err != nil {
		return err
	}
	return s.api.Post(ctx, token, "/patients", p, nil)
}

// Update submits changes to an existing patient.
func (s *Service) Update(ctx context.Context, token string, id int64, p Payload) error {
	if err := Validate(p); err != nil {
		return err
	}
	return s.api.Put(ctx, token, fmt.Sprintf("/patients/%d", id), p, nil)
}

// Delete removes a patient. The backend also removes their appointments.
func (s *Service) Delete(ctx context.Context, token string, id int64) error {
	return s.api.Delete(ctx, token, fmt.Sprintf("/patients/%d", id))
}

// Validate enforces the required fields before any request is sent. The
// backend remains the final authority.
func Validate(p Payload) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("first_name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("last_name is required")
	}
	if strings.TrimSpace(p.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}
