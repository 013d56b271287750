package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/dentadmin/console/internal/platform/apiclient"
	"github.com/dentadmin/console/internal/store"
)

const minPasswordLen = 6

// Service manages staff accounts through the backend API.
type Service struct {
	api   *apiclient.Client
	cache *store.Cache[User]
}

func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, cache: store.NewCache[User]()}
}

// Load fetches the account list and replaces the cache wholesale.
func (s *Service) Load(ctx context.Context, token string) ([]User, error) {
	gen := s.cache.Begin()
	items := []User{}
	if err := s.api.Get(ctx, token, "/users", nil, &items); err != nil {
		return nil, err
	}
	s.cache.Complete(gen, items)
	return items, nil
}

// Cached returns the last-loaded account list.
func (s *Service) Cached() []User {
	return s.cache.Items()
}

// Loaded reports whether any load has completed.
func (s *Service) Loaded() bool {
	return s.cache.Loaded()
}

// Get fetches a single account by id.
func (s *Service) Get(ctx context.Context, token string, id int64) (*User, error) {
	var u User
	if err := s.api.Get(ctx, token, fmt.Sprintf("/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create submits a new account.
func (s *Service) Create(ctx context.Context, token string, p CreatePayload) error {
	if err := ValidateCreate(p); err != nil {
		return err
	}
	return s.api.Post(ctx, token, "/users", p, nil)
}

// Update submits changes to an existing account.
func (s *Service) Update(ctx context.Context, token string, id int64, p UpdatePayload) error {
	if err := ValidateUpdate(p); err != nil {
		return err
	}
	return s.api.Put(ctx, token, fmt.Sprintf("/users/%d", id), p, nil)
}

// Delete removes an account. The backend refuses to delete the last
// remaining account; that rule stays server-side.
func (s *Service) Delete(ctx context.Context, token string, id int64) error {
	return s.api.Delete(ctx, token, fmt.Sprintf("/users/%d", id))
}

// ChangePassword changes the signed-in user's password.
func (s *Service) ChangePassword(ctx context.Context, token string, p PasswordChange) error {
	if err := ValidatePasswordChange(p); err != nil {
		return err
	}
	return s.api.Post(ctx, token, "/change-password", p, nil)
}

// ValidateCreate enforces the required fields for new accounts.
func ValidateCreate(p CreatePayload) error {
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if len(p.Password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// ValidateUpdate enforces the required fields for account edits.
func ValidateUpdate(p UpdatePayload) error {
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}

// ValidatePasswordChange enforces the password rules before the request.
func ValidatePasswordChange(p PasswordChange) error {
	if p.CurrentPassword == "" {
		return fmt.Errorf("current password is required")
	}
	if len(p.NewPassword) < minPasswordLen {
		return fmt.Errorf("new password must be at least %d characters", minPasswordLen)
	}
	return nil
}
