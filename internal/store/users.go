package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/identitystore/internal/common"
	"github.com/dmitrijs2005/identitystore/internal/models"
	"github.com/dmitrijs2005/identitystore/internal/normalizer"
)

// Records stored in s.users are never modified after insertion; Update swaps
// in a fresh clone. That is what makes cloning outside the index lock safe.

// Create assigns a new id to user and stores a copy of it under its
// normalized user name. It fails with common.ErrorAlreadyExists when that
// name (compared case-insensitively) is taken; user is left untouched then.
func (s *MemoryStore) Create(ctx context.Context, user *models.User) error {
	s.structure.RLock()
	defer s.structure.RUnlock()

	key := normalizer.Key(user.NormalizedUserName)
	id := s.newID()

	rec := user.Clone()
	rec.ID = id
	if !s.users.add(key, rec) {
		return fmt.Errorf("create user %q: %w", user.NormalizedUserName, common.ErrorAlreadyExists)
	}
	if !s.userKeys.add(id, key) {
		panic(fmt.Sprintf("identity store: id %q generated twice", id))
	}

	user.ID = id
	s.logger.Debug(ctx, "user created", "user_id", id, "key", key)
	return nil
}

// Delete removes the record stored under user.UserName. When user.ID is set
// the stored record must carry the same id, so a stale copy cannot remove a
// different user who has since taken the name. It fails with
// common.ErrorNotFound if no such record is live.
//
// Unless the store was built WithSideTableRetention, the user's claims,
// roles, logins, authenticator key and recovery codes go with it.
func (s *MemoryStore) Delete(ctx context.Context, user *models.User) error {
	s.structure.RLock()
	defer s.structure.RUnlock()

	key := normalizer.Key(user.UserName)
	removed, ok := s.users.removeIf(key, func(rec *models.User) bool {
		return user.ID == "" || rec.ID == user.ID
	})
	if !ok {
		return fmt.Errorf("delete user %q: %w", user.UserName, common.ErrorNotFound)
	}
	if _, ok := s.userKeys.remove(removed.ID); !ok {
		panic(fmt.Sprintf("identity store: id %q missing from reverse index", removed.ID))
	}

	if !s.retainOnDelete {
		s.details.remove(removed.ID)
		s.authenticatorKeys.remove(removed.ID)
		s.recoveryCodes.remove(removed.ID)
	}

	s.logger.Debug(ctx, "user deleted", "user_id", removed.ID, "key", key)
	return nil
}

// FindByID returns a copy of the record with the given id, or nil. A lookup
// racing a Delete may return nil for an id that existed a moment earlier.
func (s *MemoryStore) FindByID(ctx context.Context, userID string) (*models.User, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	key, ok := s.userKeys.get(userID)
	if !ok {
		return nil, nil
	}
	rec, ok := s.users.get(key)
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

// FindByName returns a copy of the record stored under normalizedUserName,
// compared case-insensitively, or nil.
func (s *MemoryStore) FindByName(ctx context.Context, normalizedUserName string) (*models.User, error) {
	s.structure.RLock()
	defer s.structure.RUnlock()

	rec, ok := s.users.get(normalizer.Key(normalizedUserName))
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

// Update replaces the stored record for user.ID with a copy of user.
//
// When user.NormalizedUserName maps to a different key than the one indexed
// for user.ID, the record moves: it is inserted under the new key (failing
// with common.ErrorAlreadyExists and changing nothing if that key is taken),
// removed from the old key, and the reverse entry is repointed. The whole
// sequence runs under the exclusive structural lock.
//
// No stamp check is made; the last writer wins.
func (s *MemoryStore) Update(ctx context.Context, user *models.User) error {
	s.structure.Lock()
	defer s.structure.Unlock()

	current, ok := s.userKeys.get(user.ID)
	if !ok {
		return fmt.Errorf("update user %q: %w", user.ID, common.ErrorNotFound)
	}

	rec := user.Clone()
	next := normalizer.Key(user.NormalizedUserName)

	if next == current {
		if !s.users.replace(current, rec) {
			panic(fmt.Sprintf("identity store: key %q indexed for %q but not stored", current, user.ID))
		}
		return nil
	}

	if !s.users.add(next, rec) {
		return fmt.Errorf("rename user %q to %q: %w", user.ID, user.NormalizedUserName, common.ErrorAlreadyExists)
	}
	if _, ok := s.users.remove(current); !ok {
		panic(fmt.Sprintf("identity store: key %q indexed for %q but not stored", current, user.ID))
	}
	s.userKeys.set(user.ID, next)

	s.logger.Debug(ctx, "user renamed", "user_id", user.ID, "from", current, "to", next)
	return nil
}

// FindByEmail scans live records for the first one whose normalized e-mail
// matches, case-insensitively. Which record wins among duplicates is
// unspecified.
func (s *MemoryStore) FindByEmail(ctx context.Context, normalizedEmail string) (*models.User, error) {
	if normalizedEmail == "" {
		return nil, nil
	}
	want := normalizer.Key(normalizedEmail)

	for _, rec := range s.snapshot() {
		if normalizer.Key(rec.NormalizedEmail) == want {
			return rec.Clone(), nil
		}
	}
	return nil, nil
}

// ListUsers returns copies of all live records ordered by normalized name.
func (s *MemoryStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	recs := s.snapshot()
	out := make([]*models.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Clone())
	}
	slices.SortFunc(out, func(a, b *models.User) int {
		return strings.Compare(a.NormalizedUserName, b.NormalizedUserName)
	})
	return out, nil
}

// Count returns the number of live records.
func (s *MemoryStore) Count(ctx context.Context) int {
	return s.users.len()
}

// snapshot returns the stored (shared, read-only) records. Callers must
// clone before handing any of them out.
func (s *MemoryStore) snapshot() []*models.User {
	s.structure.RLock()
	defer s.structure.RUnlock()

	recs := make([]*models.User, 0, s.users.len())
	s.users.each(func(_ string, rec *models.User) bool {
		recs = append(recs, rec)
		return true
	})
	return recs
}

// scan returns copies of the live records whose id satisfies match.
func (s *MemoryStore) scan(match func(userID string) bool) []*models.User {
	var out []*models.User
	for _, rec := range s.snapshot() {
		if match(rec.ID) {
			out = append(out, rec.Clone())
		}
	}
	if out == nil {
		out = []*models.User{}
	}
	return out
}
