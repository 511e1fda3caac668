package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/identitystore/internal/common"
	"github.com/dmitrijs2005/identitystore/internal/logging"
	"github.com/dmitrijs2005/identitystore/internal/models"
	"github.com/dmitrijs2005/identitystore/internal/services"
)

// UserService is the surface of services.UserService the console drives.
type UserService interface {
	Register(ctx context.Context, userName, email, password string) (*models.User, error)
	SignIn(ctx context.Context, userName, password string) (*services.TokenResult, error)
	RefreshSignIn(ctx context.Context, userID string) (*services.TokenResult, error)
	ValidateToken(ctx context.Context, token string) (*models.User, error)
	IsLockedOut(user *models.User) bool

	ListUsers(ctx context.Context) ([]*models.User, error)
	FindByName(ctx context.Context, userName string) (*models.User, error)
	Delete(ctx context.Context, userID string) error
	Unlock(ctx context.Context, userID string) error

	ChangePassword(ctx context.Context, userID, current, next string) error
	Rename(ctx context.Context, userID, userName string) error
	SetEmail(ctx context.Context, userID, email string) error
	ConfirmEmail(ctx context.Context, userID string) error
	SetPhoneNumber(ctx context.Context, userID, phone string) error
	ConfirmPhoneNumber(ctx context.Context, userID string) error
	SetTwoFactorEnabled(ctx context.Context, userID string, enabled bool) error

	AddToRole(ctx context.Context, userID, role string) error
	RemoveFromRole(ctx context.Context, userID, role string) error
	GetRoles(ctx context.Context, userID string) ([]string, error)
	AddClaims(ctx context.Context, userID string, claims ...models.Claim) error
	RemoveClaims(ctx context.Context, userID string, claimTypes ...string) error
	GetClaims(ctx context.Context, userID string) ([]models.Claim, error)
	AddLogin(ctx context.Context, userID string, login models.Login) error
	RemoveLogin(ctx context.Context, userID, provider, providerKey string) error
	GetLogins(ctx context.Context, userID string) ([]models.Login, error)

	GenerateRecoveryCodes(ctx context.Context, userID string) ([]string, error)
	RedeemRecoveryCode(ctx context.Context, userID, code string) error
	CountRecoveryCodes(ctx context.Context, userID string) (int, error)
	ResetAuthenticatorKey(ctx context.Context, userID string) (string, error)
	GetAuthenticatorKey(ctx context.Context, userID string) (string, error)
}

var _ UserService = (*services.UserService)(nil)

var errUsage = errors.New("usage")

// App is the console state: the service it drives, its I/O and the current
// session token.
type App struct {
	users  UserService
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	token    string
	userName string
}

// NewApp returns a console reading commands from in and writing to out.
func NewApp(users UserService, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{users: users, logger: logger, reader: bufio.NewReader(in), out: out}
}

// Run blocks in the REPL until the user exits, input ends or ctx is done.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Identity console (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) status() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

// current validates the session token and returns the signed-in user. An
// invalid token ends the session.
func (a *App) current(ctx context.Context) (*models.User, error) {
	user, err := a.users.ValidateToken(ctx, a.token)
	if err != nil {
		a.endSession()
		if errors.Is(err, common.ErrInvalidToken) {
			return nil, fmt.Errorf("session ended, please log in again: %w", err)
		}
		return nil, err
	}
	a.userName = user.UserName
	return user, nil
}

// refresh re-issues the session token after a change of our own that
// rotated the security stamp.
func (a *App) refresh(ctx context.Context, userID string) error {
	res, err := a.users.RefreshSignIn(ctx, userID)
	if err != nil {
		a.endSession()
		return err
	}
	a.token = res.AccessToken
	if _, err := a.current(ctx); err != nil {
		return err
	}
	return nil
}

func (a *App) startSession(token, userName string) {
	a.token = token
	a.userName = userName
}

func (a *App) endSession() {
	a.token = ""
	a.userName = ""
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}
