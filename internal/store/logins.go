package store

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/identitystore/internal/models"
)

// AddLogin appends login. Uniqueness of (provider, key) is the caller's
// concern.
func (s *MemoryStore) AddLogin(ctx context.Context, userID string, login models.Login) error {
	s.editDetails(userID, func(d *details) {
		d.logins = append(d.logins, login)
	})
	return nil
}

// RemoveLogin drops every login matching both provider and key.
func (s *MemoryStore) RemoveLogin(ctx context.Context, userID, loginProvider, providerKey string) error {
	s.editExistingDetails(userID, func(d *details) {
		d.logins = slices.DeleteFunc(d.logins, func(l models.Login) bool {
			return l.Is(loginProvider, providerKey)
		})
	})
	return nil
}

// GetLogins returns a copy of the user's logins in insertion order.
func (s *MemoryStore) GetLogins(ctx context.Context, userID string) ([]models.Login, error) {
	out := []models.Login{}
	s.details.view(userID, func(d *details) {
		out = append(out, d.logins...)
	})
	return out, nil
}

// FindByLogin scans live users and returns the first one holding the login,
// or nil. Which user is first among several holders is unspecified.
func (s *MemoryStore) FindByLogin(ctx context.Context, loginProvider, providerKey string) (*models.User, error) {
	for _, rec := range s.snapshot() {
		found := false
		s.details.view(rec.ID, func(d *details) {
			found = slices.ContainsFunc(d.logins, func(l models.Login) bool {
				return l.Is(loginProvider, providerKey)
			})
		})
		if found {
			return rec.Clone(), nil
		}
	}
	return nil, nil
}
