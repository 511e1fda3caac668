package store

import (
	"context"
	"time"

	"github.com/dmitrijs2005/identitystore/internal/models"
)

// Lockout bookkeeping follows the same detached pattern as the other
// accessors: callers mutate their copy and persist it with Update.

// GetLockoutEndDate returns a copy of the lockout end, or nil.
func (s *MemoryStore) GetLockoutEndDate(ctx context.Context, user *models.User) (*time.Time, error) {
	if user.LockoutEnd == nil {
		return nil, nil
	}
	end := *user.LockoutEnd
	return &end, nil
}

func (s *MemoryStore) SetLockoutEndDate(ctx context.Context, user *models.User, end *time.Time) error {
	if end == nil {
		user.LockoutEnd = nil
		return nil
	}
	v := *end
	user.LockoutEnd = &v
	return nil
}

// IncrementAccessFailedCount bumps the counter on user and returns the new
// value.
func (s *MemoryStore) IncrementAccessFailedCount(ctx context.Context, user *models.User) (int, error) {
	user.AccessFailedCount++
	return user.AccessFailedCount, nil
}

func (s *MemoryStore) ResetAccessFailedCount(ctx context.Context, user *models.User) error {
	user.AccessFailedCount = 0
	return nil
}

func (s *MemoryStore) GetAccessFailedCount(ctx context.Context, user *models.User) (int, error) {
	return user.AccessFailedCount, nil
}

func (s *MemoryStore) GetLockoutEnabled(ctx context.Context, user *models.User) (bool, error) {
	return user.LockoutEnabled, nil
}

func (s *MemoryStore) SetLockoutEnabled(ctx context.Context, user *models.User, enabled bool) error {
	user.LockoutEnabled = enabled
	return nil
}
