package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/identitystore/internal/common"
	"github.com/dmitrijs2005/identitystore/internal/cryptox"
	"github.com/dmitrijs2005/identitystore/internal/normalizer"
)

// ChangePassword replaces the password after checking current. Issued tokens
// stop validating.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := s.store.GetPasswordHash(ctx, user)
	if err != nil {
		return err
	}
	if !cryptox.VerifyPassword(hash, []byte(current)) {
		return common.ErrorUnauthorized
	}
	if err := s.validatePassword(next); err != nil {
		return err
	}

	newHash, err := cryptox.HashPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.store.SetPasswordHash(ctx, user, newHash); err != nil {
		return err
	}
	if err := s.rotate(ctx, user); err != nil {
		return err
	}
	return s.save(ctx, user)
}

// Rename moves the user to userName. It fails with common.ErrorAlreadyExists,
// leaving the user as it was, when the name is taken by someone else.
func (s *UserService) Rename(ctx context.Context, userID, userName string) error {
	if err := s.validateUserName(userName); err != nil {
		return err
	}

	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.store.SetUserName(ctx, user, userName); err != nil {
		return err
	}
	if err := s.store.SetNormalizedUserName(ctx, user, normalizer.NormalizeName(userName)); err != nil {
		return err
	}
	if err := s.rotate(ctx, user); err != nil {
		return err
	}
	if err := s.save(ctx, user); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	s.logger.Info(ctx, "user renamed", "user_id", userID)
	return nil
}

// SetEmail changes the e-mail and clears its confirmation.
func (s *UserService) SetEmail(ctx context.Context, userID, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.store.SetEmail(ctx, user, email); err != nil {
		return err
	}
	if err := s.store.SetNormalizedEmail(ctx, user, normalizer.NormalizeEmail(email)); err != nil {
		return err
	}
	if err := s.store.SetEmailConfirmed(ctx, user, false); err != nil {
		return err
	}
	if err := s.rotate(ctx, user); err != nil {
		return err
	}
	return s.save(ctx, user)
}

// ConfirmEmail marks the current e-mail as confirmed.
func (s *UserService) ConfirmEmail(ctx context.Context, userID string) error {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	email, err := s.store.GetEmail(ctx, user)
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("confirm email: no email set: %w", common.ErrorValidation)
	}
	if err := s.store.SetEmailConfirmed(ctx, user, true); err != nil {
		return err
	}
	return s.save(ctx, user)
}

// SetPhoneNumber changes the phone number and clears its confirmation.
func (s *UserService) SetPhoneNumber(ctx context.Context, userID, phone string) error {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.SetPhoneNumber(ctx, user, phone); err != nil {
		return err
	}
	if err := s.store.SetPhoneNumberConfirmed(ctx, user, false); err != nil {
		return err
	}
	if err := s.rotate(ctx, user); err != nil {
		return err
	}
	return s.save(ctx, user)
}

func (s *UserService) ConfirmPhoneNumber(ctx context.Context, userID string) error {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	phone, err := s.store.GetPhoneNumber(ctx, user)
	if err != nil {
		return err
	}
	if phone == "" {
		return fmt.Errorf("confirm phone number: no number set: %w", common.ErrorValidation)
	}
	if err := s.store.SetPhoneNumberConfirmed(ctx, user, true); err != nil {
		return err
	}
	return s.save(ctx, user)
}

func (s *UserService) SetTwoFactorEnabled(ctx context.Context, userID string, enabled bool) error {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.SetTwoFactorEnabled(ctx, user, enabled); err != nil {
		return err
	}
	if err := s.rotate(ctx, user); err != nil {
		return err
	}
	return s.save(ctx, user)
}

// SetLockoutEnabled switches lockout accounting for the user on or off.
func (s *UserService) SetLockoutEnabled(ctx context.Context, userID string, enabled bool) error {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.SetLockoutEnabled(ctx, user, enabled); err != nil {
		return err
	}
	return s.save(ctx, user)
}

// Unlock ends any lockout window and clears the failed-attempt count.
func (s *UserService) Unlock(ctx context.Context, userID string) error {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.SetLockoutEndDate(ctx, user, nil); err != nil {
		return err
	}
	if err := s.store.ResetAccessFailedCount(ctx, user); err != nil {
		return err
	}
	return s.save(ctx, user)
}
