package store

import (
	"context"
	"slices"
)

// Authenticator keys and recovery codes are kept per user id, apart from the
// user record, so Update never touches them.

func (s *MemoryStore) SetAuthenticatorKey(ctx context.Context, userID, key string) error {
	s.authenticatorKeys.set(userID, key)
	return nil
}

// GetAuthenticatorKey returns "" when no key was set.
func (s *MemoryStore) GetAuthenticatorKey(ctx context.Context, userID string) (string, error) {
	key, _ := s.authenticatorKeys.get(userID)
	return key, nil
}

// ReplaceCodes replaces the whole recovery-code set of the user.
func (s *MemoryStore) ReplaceCodes(ctx context.Context, userID string, codes []string) error {
	s.recoveryCodes.set(userID, slices.Clone(codes))
	return nil
}

// RedeemCode reports whether code is in the user's set. It does not remove
// the code: a redeemed code stays redeemable until the set is replaced.
// Callers that want single-use codes shrink the set with ReplaceCodes.
func (s *MemoryStore) RedeemCode(ctx context.Context, userID, code string) (bool, error) {
	found := false
	s.recoveryCodes.view(userID, func(codes []string) {
		found = slices.Contains(codes, code)
	})
	return found, nil
}

func (s *MemoryStore) CountCodes(ctx context.Context, userID string) (int, error) {
	n := 0
	s.recoveryCodes.view(userID, func(codes []string) {
		n = len(codes)
	})
	return n, nil
}

// GetCodes returns a copy of the user's recovery codes.
func (s *MemoryStore) GetCodes(ctx context.Context, userID string) ([]string, error) {
	out := []string{}
	s.recoveryCodes.view(userID, func(codes []string) {
		out = append(out, codes...)
	})
	return out, nil
}
