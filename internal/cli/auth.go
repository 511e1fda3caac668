package cli

import (
	"context"

	"github.com/dmitrijs2005/identitystore/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a user name, an optional e-mail and a password and
// creates the account. It does not sign in.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.users.Register(ctx, userName, email, string(password))
	if err != nil {
		return err
	}

	a.printf("Registered %s (%s)\n", u.UserName, u.ID)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.users.SignIn(ctx, userName, string(password))
	if err != nil {
		a.logger.Info(ctx, "console login failed", "user_name", userName, "error", err)
		return err
	}

	a.startSession(res.AccessToken, userName)
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	a.printf("Logged in as %s, session valid until %s\n", user.UserName, res.ExpiresAt.Format("15:04:05"))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.endSession()
	a.println("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	a.printf("id:          %s\n", user.ID)
	a.printf("user name:   %s\n", user.UserName)
	a.printf("email:       %s (confirmed: %t)\n", orDash(user.Email), user.EmailConfirmed)
	a.printf("phone:       %s (confirmed: %t)\n", orDash(user.PhoneNumber), user.PhoneNumberConfirmed)
	a.printf("two-factor:  %t\n", user.TwoFactorEnabled)
	a.printf("lockout:     enabled=%t failed=%d\n", user.LockoutEnabled, user.AccessFailedCount)
	return nil
}

// ChangePassword prompts for the current and the new password.
func (a *App) ChangePassword(ctx context.Context) error {
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.users.ChangePassword(ctx, user.ID, string(current), string(next)); err != nil {
		return err
	}
	if err := a.refresh(ctx, user.ID); err != nil {
		return err
	}

	a.println("Password changed")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
