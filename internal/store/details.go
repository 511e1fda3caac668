package store

import "github.com/dmitrijs2005/identitystore/internal/models"

// details is the per-user bundle of claims, roles and logins. It is only
// touched under the lock of s.details.
type details struct {
	claims []models.Claim
	roles  map[string]string // folded name -> name as first added
	logins []models.Login
}

func newDetails() *details {
	return &details{roles: make(map[string]string)}
}

// editDetails applies fn to the bundle of userID, creating it if needed.
func (s *MemoryStore) editDetails(userID string, fn func(d *details)) {
	s.details.mutate(userID, newDetails, func(d *details) *details {
		fn(d)
		return d
	})
}

// editExistingDetails applies fn only when userID already has a bundle.
func (s *MemoryStore) editExistingDetails(userID string, fn func(d *details)) {
	s.details.modify(userID, func(d *details) *details {
		fn(d)
		return d
	})
}
