package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/identitystore/internal/common"
	"github.com/dmitrijs2005/identitystore/internal/models"
)

// The store keeps claims, roles and logins for any id it is given. The
// methods below only touch users that exist.

func (s *UserService) AddToRole(ctx context.Context, userID, role string) error {
	if role == "" {
		return fmt.Errorf("empty role: %w", common.ErrorValidation)
	}
	if _, err := s.load(ctx, userID); err != nil {
		return err
	}
	return s.store.AddToRole(ctx, userID, role)
}

func (s *UserService) RemoveFromRole(ctx context.Context, userID, role string) error {
	if _, err := s.load(ctx, userID); err != nil {
		return err
	}
	return s.store.RemoveFromRole(ctx, userID, role)
}

func (s *UserService) GetRoles(ctx context.Context, userID string) ([]string, error) {
	if _, err := s.load(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetRoles(ctx, userID)
}

func (s *UserService) IsInRole(ctx context.Context, userID, role string) (bool, error) {
	if _, err := s.load(ctx, userID); err != nil {
		return false, err
	}
	return s.store.IsInRole(ctx, userID, role)
}

func (s *UserService) GetUsersInRole(ctx context.Context, role string) ([]*models.User, error) {
	return s.store.GetUsersInRole(ctx, role)
}

func (s *UserService) AddClaims(ctx context.Context, userID string, claims ...models.Claim) error {
	for _, c := range claims {
		if c.Type == "" {
			return fmt.Errorf("claim without type: %w", common.ErrorValidation)
		}
	}
	if _, err := s.load(ctx, userID); err != nil {
		return err
	}
	return s.store.AddClaims(ctx, userID, claims)
}

// ReplaceClaim swaps the first claim of claim.Type for newClaim, appending
// newClaim when there is none.
func (s *UserService) ReplaceClaim(ctx context.Context, userID string, claim, newClaim models.Claim) error {
	if _, err := s.load(ctx, userID); err != nil {
		return err
	}
	return s.store.ReplaceClaim(ctx, userID, claim, newClaim)
}

// RemoveClaims drops every claim of the given types.
func (s *UserService) RemoveClaims(ctx context.Context, userID string, claimTypes ...string) error {
	if _, err := s.load(ctx, userID); err != nil {
		return err
	}
	claims := make([]models.Claim, 0, len(claimTypes))
	for _, t := range claimTypes {
		claims = append(claims, models.Claim{Type: t})
	}
	return s.store.RemoveClaims(ctx, userID, claims)
}

func (s *UserService) GetClaims(ctx context.Context, userID string) ([]models.Claim, error) {
	if _, err := s.load(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetClaims(ctx, userID)
}

func (s *UserService) GetUsersForClaim(ctx context.Context, claim models.Claim) ([]*models.User, error) {
	return s.store.GetUsersForClaim(ctx, claim)
}

// AddLogin links an external login to the user. A login already linked to
// any user fails with common.ErrorAlreadyExists.
func (s *UserService) AddLogin(ctx context.Context, userID string, login models.Login) error {
	if login.LoginProvider == "" || login.ProviderKey == "" {
		return fmt.Errorf("login needs provider and key: %w", common.ErrorValidation)
	}
	if _, err := s.load(ctx, userID); err != nil {
		return err
	}

	s.loginsMu.Lock()
	defer s.loginsMu.Unlock()

	owner, err := s.store.FindByLogin(ctx, login.LoginProvider, login.ProviderKey)
	if err != nil {
		return err
	}
	if owner != nil {
		return fmt.Errorf("login %s/%s: %w", login.LoginProvider, login.ProviderKey, common.ErrorAlreadyExists)
	}
	return s.store.AddLogin(ctx, userID, login)
}

// RemoveLogin unlinks an external login and rotates the security stamp.
func (s *UserService) RemoveLogin(ctx context.Context, userID, provider, providerKey string) error {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.RemoveLogin(ctx, userID, provider, providerKey); err != nil {
		return err
	}
	if err := s.rotate(ctx, user); err != nil {
		return err
	}
	return s.save(ctx, user)
}

func (s *UserService) GetLogins(ctx context.Context, userID string) ([]models.Login, error) {
	if _, err := s.load(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetLogins(ctx, userID)
}

// FindByLogin returns the user holding the login or common.ErrorNotFound.
func (s *UserService) FindByLogin(ctx context.Context, provider, providerKey string) (*models.User, error) {
	user, err := s.store.FindByLogin(ctx, provider, providerKey)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("login %s/%s: %w", provider, providerKey, common.ErrorNotFound)
	}
	return user, nil
}
