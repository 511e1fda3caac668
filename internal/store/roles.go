package store

import (
	"context"
	"maps"
	"slices"

	"github.com/dmitrijs2005/identitystore/internal/models"
	"github.com/dmitrijs2005/identitystore/internal/normalizer"
)

// AddToRole adds roleName to the user's role set. Role names compare
// case-insensitively; adding a present role is a no-op.
func (s *MemoryStore) AddToRole(ctx context.Context, userID, roleName string) error {
	key := normalizer.Key(roleName)
	s.editDetails(userID, func(d *details) {
		if _, ok := d.roles[key]; !ok {
			d.roles[key] = roleName
		}
	})
	return nil
}

// RemoveFromRole removes roleName; removing an absent role is a no-op.
func (s *MemoryStore) RemoveFromRole(ctx context.Context, userID, roleName string) error {
	key := normalizer.Key(roleName)
	s.editExistingDetails(userID, func(d *details) {
		delete(d.roles, key)
	})
	return nil
}

// GetRoles returns the user's roles sorted by name.
func (s *MemoryStore) GetRoles(ctx context.Context, userID string) ([]string, error) {
	out := []string{}
	s.details.view(userID, func(d *details) {
		out = slices.AppendSeq(out, maps.Values(d.roles))
	})
	slices.Sort(out)
	return out, nil
}

func (s *MemoryStore) IsInRole(ctx context.Context, userID, roleName string) (bool, error) {
	key := normalizer.Key(roleName)
	in := false
	s.details.view(userID, func(d *details) {
		_, in = d.roles[key]
	})
	return in, nil
}

// GetUsersInRole scans every live user for roleName.
func (s *MemoryStore) GetUsersInRole(ctx context.Context, roleName string) ([]*models.User, error) {
	key := normalizer.Key(roleName)
	return s.scan(func(userID string) bool {
		in := false
		s.details.view(userID, func(d *details) {
			_, in = d.roles[key]
		})
		return in
	}), nil
}
