package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// List prints every user with its lockout state.
func (a *App) List(ctx context.Context) error {
	users, err := a.users.ListUsers(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tEMAIL\tID\tLOCKED")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.UserName, orDash(u.Email), u.ID, a.users.IsLockedOut(u))
	}
	return w.Flush()
}

func (a *App) Find(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("find <user name>")
	}
	u, err := a.users.FindByName(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("%s %s locked=%t\n", u.UserName, u.ID, a.users.IsLockedOut(u))
	return nil
}

// Unlock clears the lockout of the named user.
func (a *App) Unlock(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("unlock <user name>")
	}
	u, err := a.users.FindByName(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.users.Unlock(ctx, u.ID); err != nil {
		return err
	}
	a.printf("Unlocked %s\n", u.UserName)
	return nil
}

func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rename <new user name>")
	}
	user, err := a.current(ctx)
	if err != nil {
		return err
	}
	if err := a.users.Rename(ctx, user.ID, args[0]); err != nil {
		return err
	}
	if err := a.refresh(ctx, user.ID); err != nil {
		return err
	}
	a.printf("Renamed to %s\n", args[0])
	return nil
}

// Email sets the address, or confirms it with "email confirm".
func (a *App) Email(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("email <address>|confirm")
	}
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	if args[0] == "confirm" {
		if err := a.users.ConfirmEmail(ctx, user.ID); err != nil {
			return err
		}
		a.println("Email confirmed")
		return nil
	}

	if err := a.users.SetEmail(ctx, user.ID, args[0]); err != nil {
		return err
	}
	if err := a.refresh(ctx, user.ID); err != nil {
		return err
	}
	a.println("Email changed")
	return nil
}

// Phone sets the number, or confirms it with "phone confirm".
func (a *App) Phone(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("phone <number>|confirm")
	}
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	if args[0] == "confirm" {
		if err := a.users.ConfirmPhoneNumber(ctx, user.ID); err != nil {
			return err
		}
		a.println("Phone number confirmed")
		return nil
	}

	if err := a.users.SetPhoneNumber(ctx, user.ID, args[0]); err != nil {
		return err
	}
	if err := a.refresh(ctx, user.ID); err != nil {
		return err
	}
	a.println("Phone number changed")
	return nil
}

func (a *App) TwoFactor(ctx context.Context, args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return usage("2fa on|off")
	}
	user, err := a.current(ctx)
	if err != nil {
		return err
	}
	if err := a.users.SetTwoFactorEnabled(ctx, user.ID, args[0] == "on"); err != nil {
		return err
	}
	if err := a.refresh(ctx, user.ID); err != nil {
		return err
	}
	a.printf("Two-factor authentication %s\n", args[0])
	return nil
}

// Delete removes the signed-in user after a confirmation prompt and ends the
// session.
func (a *App) Delete(ctx context.Context) error {
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Type %q to delete the account", user.UserName), a.out)
	if err != nil {
		return err
	}
	if answer != user.UserName {
		a.println("Cancelled")
		return nil
	}

	if err := a.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	a.endSession()
	a.println("Account deleted")
	return nil
}
