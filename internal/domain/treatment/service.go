package treatment

import (
	"context"
	"fmt"
	"strings"

	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/store"
)

// Service loads the treatment catalog and keeps the page-lifetime cache
// that scheduling dropdowns draw from.
type Service struct {
	api   *apiclient.Client
	cache *store.Cache[Treatment]
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, cache: store.NewCache[Treatment]()}
}

// Load fetches the treatment catalog and replaces the cache wholesale.
func (s *Service) Load(ctx context.Context, token string) ([]Treatment, error) {
	gen := s.cache.Begin()
	items := []Treatment{}
	if err := s.api.Get(ctx, token, "/treatments", nil, &items); err != nil {
		return nil, err
	}
	s.cache.Complete(gen, items)
	return items, nil
}

// Cached returns the last-loaded catalog.
func (s *Service) Cached() []Treatment {
	return s.cache.Items()
}

// Loaded reports whether any load has completed.
func (s *Service) Loaded() bool {
	return s.cache.Loaded()
}

// Active returns the active subset of the catalog for scheduling dropdowns,
// loading the catalog first if nothing is cached yet.
func (s *Service) Active(ctx context.Context, token string) ([]Treatment, error) {
	if !s.cache.Loaded() {
		if _, err := s.Load(ctx, token); err != nil {
			return nil, err
		}
	}
	active := []Treatment{}
	for _, t := range s.cache.Items() {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active, nil
}

// Get fetches a single treatment by id.
func (s *Service) Get(ctx context.Context, token string, id int64) (*Treatment, error) {
	var t Treatment
	if err := s.api.Get(ctx, token, fmt.Sprintf("/treatments/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create submits a new treatment.
func (s *Service) Create(ctx context.Context, token string, p Payload) error {
	if err := Validate(p); err != nil {
		return err
	}
	return s.api.Post(ctx, token, "/treatments", p, nil)
}

// Update submits changes to an existing treatment.
func (s *Service) Update(ctx context.Context, token string, id int64, p Payload) error {
	if err := Validate(p); err != nil {
		return err
	}
	return s.api.Put(ctx, token, fmt.Sprintf("/treatments/%d", id), p, nil)
}

// Delete removes a treatment from the catalog.
func (s *Service) Delete(ctx context.Context, token string, id int64) error {
	return s.api.Delete(ctx, token, fmt.Sprintf("/treatments/%d", id))
}

// Validate enforces the required fields before any request is sent.
func Validate(p Payload) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return nil
}
