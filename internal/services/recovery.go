package services

import (
	"context"
	"errors"
	"slices"

	"github.com/dmitrijs2005/identitystore/internal/common"
	"github.com/dmitrijs2005/identitystore/internal/cryptox"
)

// GenerateRecoveryCodes replaces the user's recovery codes with a fresh set
// and returns it. This is the only time the codes are shown.
func (s *UserService) GenerateRecoveryCodes(ctx context.Context, userID string) ([]string, error) {
	defer s.locks.lock(userID)()

	if _, err := s.load(ctx, userID); err != nil {
		return nil, err
	}

	codes, err := cryptox.GenerateRecoveryCodes(s.recoveryCodeCount)
	if err != nil {
		return nil, errors.Join(common.ErrorInternal, err)
	}
	if err := s.store.ReplaceCodes(ctx, userID, codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// RedeemRecoveryCode accepts code once. An unknown or already used code
// yields common.ErrorUnauthorized.
func (s *UserService) RedeemRecoveryCode(ctx context.Context, userID, code string) error {
	// redeem-and-shrink is one step per user
	defer s.locks.lock(userID)()

	if _, err := s.load(ctx, userID); err != nil {
		return err
	}

	ok, err := s.store.RedeemCode(ctx, userID, code)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Info(ctx, "recovery code rejected", "user_id", userID)
		return common.ErrorUnauthorized
	}

	codes, err := s.store.GetCodes(ctx, userID)
	if err != nil {
		return err
	}
	codes = slices.DeleteFunc(codes, func(c string) bool { return c == code })
	if err := s.store.ReplaceCodes(ctx, userID, codes); err != nil {
		return err
	}

	s.logger.Info(ctx, "recovery code redeemed", "user_id", userID, "remaining", len(codes))
	return nil
}

func (s *UserService) CountRecoveryCodes(ctx context.Context, userID string) (int, error) {
	if _, err := s.load(ctx, userID); err != nil {
		return 0, err
	}
	return s.store.CountCodes(ctx, userID)
}

// ResetAuthenticatorKey stores and returns a new authenticator key. The
// security stamp rotates with it.
func (s *UserService) ResetAuthenticatorKey(ctx context.Context, userID string) (string, error) {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return "", err
	}

	key := cryptox.GenerateAuthenticatorKey()
	if err := s.store.SetAuthenticatorKey(ctx, userID, key); err != nil {
		return "", err
	}
	if err := s.rotate(ctx, user); err != nil {
		return "", err
	}
	if err := s.save(ctx, user); err != nil {
		return "", err
	}
	return key, nil
}

// GetAuthenticatorKey returns the user's key or "" when none was set.
func (s *UserService) GetAuthenticatorKey(ctx context.Context, userID string) (string, error) {
	if _, err := s.load(ctx, userID); err != nil {
		return "", err
	}
	return s.store.GetAuthenticatorKey(ctx, userID)
}
