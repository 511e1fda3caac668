package store

import (
	"context"

	"github.com/dmitrijs2005/identitystore/internal/models"
)

// The accessors below read or write the record passed in and nothing else.
// Changes reach the store only through Update.

func (s *MemoryStore) GetUserID(ctx context.Context, user *models.User) (string, error) {
	return user.ID, nil
}

func (s *MemoryStore) GetUserName(ctx context.Context, user *models.User) (string, error) {
	return user.UserName, nil
}

func (s *MemoryStore) SetUserName(ctx context.Context, user *models.User, userName string) error {
	user.UserName = userName
	return nil
}

func (s *MemoryStore) GetNormalizedUserName(ctx context.Context, user *models.User) (string, error) {
	return user.NormalizedUserName, nil
}

func (s *MemoryStore) SetNormalizedUserName(ctx context.Context, user *models.User, normalizedName string) error {
	user.NormalizedUserName = normalizedName
	return nil
}

func (s *MemoryStore) SetPasswordHash(ctx context.Context, user *models.User, passwordHash string) error {
	user.PasswordHash = passwordHash
	return nil
}

func (s *MemoryStore) GetPasswordHash(ctx context.Context, user *models.User) (string, error) {
	return user.PasswordHash, nil
}

func (s *MemoryStore) HasPassword(ctx context.Context, user *models.User) (bool, error) {
	return user.PasswordHash != "", nil
}

func (s *MemoryStore) SetSecurityStamp(ctx context.Context, user *models.User, stamp string) error {
	user.SecurityStamp = stamp
	return nil
}

func (s *MemoryStore) GetSecurityStamp(ctx context.Context, user *models.User) (string, error) {
	return user.SecurityStamp, nil
}

func (s *MemoryStore) SetEmail(ctx context.Context, user *models.User, email string) error {
	user.Email = email
	return nil
}

func (s *MemoryStore) GetEmail(ctx context.Context, user *models.User) (string, error) {
	return user.Email, nil
}

func (s *MemoryStore) GetEmailConfirmed(ctx context.Context, user *models.User) (bool, error) {
	return user.EmailConfirmed, nil
}

func (s *MemoryStore) SetEmailConfirmed(ctx context.Context, user *models.User, confirmed bool) error {
	user.EmailConfirmed = confirmed
	return nil
}

func (s *MemoryStore) GetNormalizedEmail(ctx context.Context, user *models.User) (string, error) {
	return user.NormalizedEmail, nil
}

func (s *MemoryStore) SetNormalizedEmail(ctx context.Context, user *models.User, normalizedEmail string) error {
	user.NormalizedEmail = normalizedEmail
	return nil
}

func (s *MemoryStore) SetPhoneNumber(ctx context.Context, user *models.User, phoneNumber string) error {
	user.PhoneNumber = phoneNumber
	return nil
}

func (s *MemoryStore) GetPhoneNumber(ctx context.Context, user *models.User) (string, error) {
	return user.PhoneNumber, nil
}

func (s *MemoryStore) GetPhoneNumberConfirmed(ctx context.Context, user *models.User) (bool, error) {
	return user.PhoneNumberConfirmed, nil
}

func (s *MemoryStore) SetPhoneNumberConfirmed(ctx context.Context, user *models.User, confirmed bool) error {
	user.PhoneNumberConfirmed = confirmed
	return nil
}

func (s *MemoryStore) SetTwoFactorEnabled(ctx context.Context, user *models.User, enabled bool) error {
	user.TwoFactorEnabled = enabled
	return nil
}

func (s *MemoryStore) GetTwoFactorEnabled(ctx context.Context, user *models.User) (bool, error) {
	return user.TwoFactorEnabled, nil
}
