package store

import (
	"context"
	"time"

	"github.com/dmitrijs2005/identitystore/internal/models"
)

// UserStore is the record CRUD group. Find* return (nil, nil) when there is
// no live record.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByName(ctx context.Context, normalizedUserName string) (*models.User, error)

	GetUserID(ctx context.Context, user *models.User) (string, error)
	GetUserName(ctx context.Context, user *models.User) (string, error)
	SetUserName(ctx context.Context, user *models.User, userName string) error
	GetNormalizedUserName(ctx context.Context, user *models.User) (string, error)
	SetNormalizedUserName(ctx context.Context, user *models.User, normalizedName string) error
}

// QueryableUserStore enumerates live records.
type QueryableUserStore interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) int
}

type ClaimStore interface {
	GetClaims(ctx context.Context, userID string) ([]models.Claim, error)
	AddClaims(ctx context.Context, userID string, claims []models.Claim) error
	ReplaceClaim(ctx context.Context, userID string, claim, newClaim models.Claim) error
	RemoveClaims(ctx context.Context, userID string, claims []models.Claim) error
	GetUsersForClaim(ctx context.Context, claim models.Claim) ([]*models.User, error)
}

type LoginStore interface {
	AddLogin(ctx context.Context, userID string, login models.Login) error
	RemoveLogin(ctx context.Context, userID, loginProvider, providerKey string) error
	GetLogins(ctx context.Context, userID string) ([]models.Login, error)
	FindByLogin(ctx context.Context, loginProvider, providerKey string) (*models.User, error)
}

type RoleStore interface {
	AddToRole(ctx context.Context, userID, roleName string) error
	RemoveFromRole(ctx context.Context, userID, roleName string) error
	GetRoles(ctx context.Context, userID string) ([]string, error)
	IsInRole(ctx context.Context, userID, roleName string) (bool, error)
	GetUsersInRole(ctx context.Context, roleName string) ([]*models.User, error)
}

type PasswordStore interface {
	SetPasswordHash(ctx context.Context, user *models.User, passwordHash string) error
	GetPasswordHash(ctx context.Context, user *models.User) (string, error)
	HasPassword(ctx context.Context, user *models.User) (bool, error)
}

type SecurityStampStore interface {
	SetSecurityStamp(ctx context.Context, user *models.User, stamp string) error
	GetSecurityStamp(ctx context.Context, user *models.User) (string, error)
}

type EmailStore interface {
	SetEmail(ctx context.Context, user *models.User, email string) error
	GetEmail(ctx context.Context, user *models.User) (string, error)
	GetEmailConfirmed(ctx context.Context, user *models.User) (bool, error)
	SetEmailConfirmed(ctx context.Context, user *models.User, confirmed bool) error
	GetNormalizedEmail(ctx context.Context, user *models.User) (string, error)
	SetNormalizedEmail(ctx context.Context, user *models.User, normalizedEmail string) error
	FindByEmail(ctx context.Context, normalizedEmail string) (*models.User, error)
}

type PhoneNumberStore interface {
	SetPhoneNumber(ctx context.Context, user *models.User, phoneNumber string) error
	GetPhoneNumber(ctx context.Context, user *models.User) (string, error)
	GetPhoneNumberConfirmed(ctx context.Context, user *models.User) (bool, error)
	SetPhoneNumberConfirmed(ctx context.Context, user *models.User, confirmed bool) error
}

type TwoFactorStore interface {
	SetTwoFactorEnabled(ctx context.Context, user *models.User, enabled bool) error
	GetTwoFactorEnabled(ctx context.Context, user *models.User) (bool, error)
}

type AuthenticatorKeyStore interface {
	SetAuthenticatorKey(ctx context.Context, userID, key string) error
	GetAuthenticatorKey(ctx context.Context, userID string) (string, error)
}

type RecoveryCodeStore interface {
	ReplaceCodes(ctx context.Context, userID string, codes []string) error
	RedeemCode(ctx context.Context, userID, code string) (bool, error)
	CountCodes(ctx context.Context, userID string) (int, error)
	GetCodes(ctx context.Context, userID string) ([]string, error)
}

type LockoutStore interface {
	GetLockoutEndDate(ctx context.Context, user *models.User) (*time.Time, error)
	SetLockoutEndDate(ctx context.Context, user *models.User, end *time.Time) error
	IncrementAccessFailedCount(ctx context.Context, user *models.User) (int, error)
	ResetAccessFailedCount(ctx context.Context, user *models.User) error
	GetAccessFailedCount(ctx context.Context, user *models.User) (int, error)
	GetLockoutEnabled(ctx context.Context, user *models.User) (bool, error)
	SetLockoutEnabled(ctx context.Context, user *models.User, enabled bool) error
}

// Store is the complete capability surface. Callers such as the service
// layer compose the groups freely, so an implementation must provide all of
// them.
type Store interface {
	UserStore
	QueryableUserStore
	ClaimStore
	LoginStore
	RoleStore
	PasswordStore
	SecurityStampStore
	EmailStore
	PhoneNumberStore
	TwoFactorStore
	AuthenticatorKeyStore
	RecoveryCodeStore
	LockoutStore
}

var _ Store = (*MemoryStore)(nil)
