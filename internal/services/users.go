// Package services contains the identity-management layer. UserService
// composes the store capabilities into registration, sign-in with lockout,
// token issuing and credential maintenance.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/identitystore/internal/auth"
	"github.com/dmitrijs2005/identitystore/internal/common"
	"github.com/dmitrijs2005/identitystore/internal/config"
	"github.com/dmitrijs2005/identitystore/internal/cryptox"
	"github.com/dmitrijs2005/identitystore/internal/logging"
	"github.com/dmitrijs2005/identitystore/internal/models"
	"github.com/dmitrijs2005/identitystore/internal/normalizer"
	"github.com/dmitrijs2005/identitystore/internal/store"
)

var userNamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+\-]{1,64}$`)

// TokenResult is what a successful sign-in hands back.
type TokenResult struct {
	AccessToken string
	ExpiresAt   time.Time
	UserID      string
}

// UserService provides identity operations on top of a store.Store:
//   - Register / Delete: create and remove users
//   - SignIn / ValidateToken: verify credentials with lockout, mint and check tokens
//   - profile, recovery-code, authenticator and role/claim/login maintenance
type UserService struct {
	store  store.Store
	logger logging.Logger
	now    func() time.Time

	jwtSecret               []byte
	tokenValidityDuration   time.Duration
	bcryptCost              int
	maxFailedAccessAttempts int
	lockoutDuration         time.Duration
	lockoutOnNewUsers       bool
	passwordMinLength       int
	recoveryCodeCount       int

	// held around every read-modify-write of a user record
	locks *userLocks
	// serialises the uniqueness check and insert of external logins
	loginsMu sync.Mutex
}

// Option configures a UserService.
type Option func(*UserService)

// WithClock replaces time.Now. Lockout windows and token lifetimes are
// computed against it.
func WithClock(now func() time.Time) Option {
	return func(s *UserService) { s.now = now }
}

// NewUserService constructs a UserService from a store and runtime config.
func NewUserService(st store.Store, cfg *config.Config, logger logging.Logger, opts ...Option) *UserService {
	s := &UserService{
		store:                   st,
		logger:                  logger.With("module", "user_service"),
		now:                     time.Now,
		jwtSecret:               []byte(cfg.SecretKey),
		tokenValidityDuration:   cfg.TokenValidityDuration,
		bcryptCost:              cfg.BcryptCost,
		maxFailedAccessAttempts: cfg.MaxFailedAccessAttempts,
		lockoutDuration:         cfg.LockoutDuration,
		lockoutOnNewUsers:       cfg.LockoutOnNewUsers,
		passwordMinLength:       cfg.PasswordMinLength,
		recoveryCodeCount:       cfg.RecoveryCodeCount,
		locks:                   newUserLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and stores a new user. email may be empty.
func (s *UserService) Register(ctx context.Context, userName, email, password string) (*models.User, error) {
	if err := s.validateUserName(userName); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", userName, err)
	}

	user := &models.User{
		UserName:           userName,
		NormalizedUserName: normalizer.NormalizeName(userName),
		Email:              email,
		NormalizedEmail:    normalizer.NormalizeEmail(email),
		PasswordHash:       hash,
		SecurityStamp:      cryptox.NewSecurityStamp(),
		ConcurrencyStamp:   cryptox.NewConcurrencyStamp(),
		LockoutEnabled:     s.lockoutOnNewUsers,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register %q: %w", userName, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// SignIn checks userName and password.
//
// Unknown users and wrong passwords yield common.ErrorUnauthorized. A user
// inside a lockout window gets common.ErrLockedOut without the password
// being looked at. Each wrong password counts toward
// MaxFailedAccessAttempts; reaching it starts a lockout window and resets
// the count. A correct password resets the count and returns a token.
func (s *UserService) SignIn(ctx context.Context, userName, password string) (*TokenResult, error) {
	found, err := s.store.FindByName(ctx, normalizer.NormalizeName(userName))
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if found == nil {
		s.logger.Info(ctx, "sign-in failed: unknown user")
		return nil, common.ErrorUnauthorized
	}

	// attempts on one user run one at a time against the latest record, so
	// concurrent wrong passwords each count
	defer s.locks.lock(found.ID)()

	user, err := s.store.FindByID(ctx, found.ID)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if user == nil {
		s.logger.Info(ctx, "sign-in failed: user removed")
		return nil, common.ErrorUnauthorized
	}

	if s.IsLockedOut(user) {
		s.logger.Warn(ctx, "sign-in rejected: locked out", "user_id", user.ID)
		return nil, common.ErrLockedOut
	}

	hash, err := s.store.GetPasswordHash(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if !cryptox.VerifyPassword(hash, []byte(password)) {
		return nil, s.recordFailure(ctx, user)
	}

	if user.AccessFailedCount != 0 || user.LockoutEnd != nil {
		if err := s.store.ResetAccessFailedCount(ctx, user); err != nil {
			return nil, err
		}
		if err := s.store.SetLockoutEndDate(ctx, user, nil); err != nil {
			return nil, err
		}
		if err := s.save(ctx, user); err != nil {
			return nil, fmt.Errorf("sign in: %w", err)
		}
	}

	res, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "sign-in succeeded", "user_id", user.ID)
	return res, nil
}

// recordFailure counts a wrong password against user and returns the error
// SignIn reports for it. The caller holds the user's lock.
func (s *UserService) recordFailure(ctx context.Context, user *models.User) error {
	enabled, err := s.store.GetLockoutEnabled(ctx, user)
	if err != nil {
		return err
	}
	if !enabled || s.maxFailedAccessAttempts <= 0 {
		s.logger.Info(ctx, "sign-in failed: wrong password", "user_id", user.ID)
		return common.ErrorUnauthorized
	}

	n, err := s.store.IncrementAccessFailedCount(ctx, user)
	if err != nil {
		return err
	}

	locked := n >= s.maxFailedAccessAttempts
	if locked {
		end := s.now().Add(s.lockoutDuration)
		if err := s.store.SetLockoutEndDate(ctx, user, &end); err != nil {
			return err
		}
		if err := s.store.ResetAccessFailedCount(ctx, user); err != nil {
			return err
		}
	}

	if err := s.save(ctx, user); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	if locked {
		s.logger.Warn(ctx, "user locked out", "user_id", user.ID, "until", user.LockoutEnd)
		return common.ErrLockedOut
	}
	s.logger.Info(ctx, "sign-in failed: wrong password", "user_id", user.ID, "failed_count", n)
	return common.ErrorUnauthorized
}

// IsLockedOut reports whether lockout is enabled for user and its lockout
// end lies in the future.
func (s *UserService) IsLockedOut(user *models.User) bool {
	return user.LockoutEnabled && user.LockoutEnd != nil && user.LockoutEnd.After(s.now())
}

// ValidateToken parses token and returns the user it was issued for. Tokens
// whose user is gone or whose security stamp has since changed are rejected
// with common.ErrInvalidToken.
func (s *UserService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret, s.now())
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("validate token: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unknown user", common.ErrInvalidToken)
	}

	stamp, err := s.store.GetSecurityStamp(ctx, user)
	if err != nil {
		return nil, err
	}
	if stamp != claims.SecurityStamp {
		return nil, fmt.Errorf("%w: security stamp changed", common.ErrInvalidToken)
	}

	return user, nil
}

// RefreshSignIn issues a new token for userID against its current security
// stamp. It is meant for sessions whose own change rotated the stamp.
func (s *UserService) RefreshSignIn(ctx context.Context, userID string) (*TokenResult, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.IsLockedOut(user) {
		return nil, common.ErrLockedOut
	}
	return s.issueToken(user)
}

// GetUser returns the user with userID or common.ErrorNotFound.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.load(ctx, userID)
}

// FindByName returns the user registered as userName (any case) or
// common.ErrorNotFound.
func (s *UserService) FindByName(ctx context.Context, userName string) (*models.User, error) {
	user, err := s.store.FindByName(ctx, normalizer.NormalizeName(userName))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", userName, common.ErrorNotFound)
	}
	return user, nil
}

// FindByEmail returns the first user with the given e-mail or
// common.ErrorNotFound.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.FindByEmail(ctx, normalizer.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("email %q: %w", email, common.ErrorNotFound)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// Delete removes the user and, unless the store retains them, its side data.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	defer s.locks.lock(userID)()

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, user); err != nil {
		return fmt.Errorf("delete user %q: %w", userID, err)
	}
	s.logger.Info(ctx, "user deleted", "user_id", userID)
	return nil
}

// --- helpers below ---

// load fetches a copy of the user. Callers that write it back hold
// s.locks for userID from before the load until after the save.
func (s *UserService) load(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", userID, common.ErrorNotFound)
	}
	return user, nil
}

// save stamps a new concurrency marker on user and writes it back.
func (s *UserService) save(ctx context.Context, user *models.User) error {
	user.ConcurrencyStamp = cryptox.NewConcurrencyStamp()
	return s.store.Update(ctx, user)
}

// rotate gives user a new security stamp, invalidating its issued tokens.
func (s *UserService) rotate(ctx context.Context, user *models.User) error {
	return s.store.SetSecurityStamp(ctx, user, cryptox.NewSecurityStamp())
}

func (s *UserService) issueToken(user *models.User) (*TokenResult, error) {
	now := s.now()
	token, err := auth.GenerateToken(user.ID, user.SecurityStamp, s.jwtSecret, s.tokenValidityDuration, now)
	if err != nil {
		return nil, errors.Join(common.ErrorInternal, err)
	}
	return &TokenResult{
		AccessToken: token,
		ExpiresAt:   now.Add(s.tokenValidityDuration),
		UserID:      user.ID,
	}, nil
}

func (s *UserService) validateUserName(userName string) error {
	if !userNamePattern.MatchString(userName) {
		return fmt.Errorf("user name %q: %w", userName, common.ErrorValidation)
	}
	return nil
}

func (s *UserService) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < s.passwordMinLength {
		return fmt.Errorf("password shorter than %d characters: %w", s.passwordMinLength, common.ErrorValidation)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email %q: %w", email, common.ErrorValidation)
	}
	return nil
}
