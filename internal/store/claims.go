package store

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/identitystore/internal/models"
)

// GetClaims returns a copy of the user's claims in insertion order.
func (s *MemoryStore) GetClaims(ctx context.Context, userID string) ([]models.Claim, error) {
	out := []models.Claim{}
	s.details.view(userID, func(d *details) {
		out = append(out, d.claims...)
	})
	return out, nil
}

// AddClaims appends claims; duplicates are kept.
func (s *MemoryStore) AddClaims(ctx context.Context, userID string, claims []models.Claim) error {
	s.editDetails(userID, func(d *details) {
		d.claims = append(d.claims, claims...)
	})
	return nil
}

// ReplaceClaim puts newClaim in place of the first claim whose type equals
// claim.Type, keeping its position. With no such claim newClaim is appended.
// Only the type of claim is looked at.
func (s *MemoryStore) ReplaceClaim(ctx context.Context, userID string, claim, newClaim models.Claim) error {
	s.editDetails(userID, func(d *details) {
		i := slices.IndexFunc(d.claims, func(c models.Claim) bool { return c.Type == claim.Type })
		if i < 0 {
			d.claims = append(d.claims, newClaim)
			return
		}
		d.claims[i] = newClaim
	})
	return nil
}

// RemoveClaims drops every claim whose type equals the type of any claim in
// claims. Values are ignored: removing (role, x) also removes (role, admin).
func (s *MemoryStore) RemoveClaims(ctx context.Context, userID string, claims []models.Claim) error {
	if len(claims) == 0 {
		return nil
	}
	types := make(map[string]struct{}, len(claims))
	for _, c := range claims {
		types[c.Type] = struct{}{}
	}

	s.editExistingDetails(userID, func(d *details) {
		d.claims = slices.DeleteFunc(d.claims, func(c models.Claim) bool {
			_, drop := types[c.Type]
			return drop
		})
	})
	return nil
}

// GetUsersForClaim scans every live user for a claim equal to claim in type,
// value type and value.
func (s *MemoryStore) GetUsersForClaim(ctx context.Context, claim models.Claim) ([]*models.User, error) {
	return s.scan(func(userID string) bool {
		found := false
		s.details.view(userID, func(d *details) {
			found = slices.ContainsFunc(d.claims, claim.Matches)
		})
		return found
	}), nil
}
