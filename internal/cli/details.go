package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/identitystore/internal/models"
)

// Roles lists the user's roles, or adds/removes one.
func (a *App) Roles(ctx context.Context, args []string) error {
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	switch {
	case len(args) == 0:
		roles, err := a.users.GetRoles(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(roles) == 0 {
			a.println("No roles")
			return nil
		}
		a.println(strings.Join(roles, ", "))
		return nil
	case len(args) == 2 && args[0] == "add":
		return a.users.AddToRole(ctx, user.ID, args[1])
	case len(args) == 2 && args[0] == "remove":
		return a.users.RemoveFromRole(ctx, user.ID, args[1])
	default:
		return usage("roles [add|remove <role>]")
	}
}

// Claims lists the user's claims, or adds one / removes every claim of a
// type.
func (a *App) Claims(ctx context.Context, args []string) error {
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	switch {
	case len(args) == 0:
		claims, err := a.users.GetClaims(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(claims) == 0 {
			a.println("No claims")
		}
		for _, c := range claims {
			a.printf("%s = %s\n", c.Type, c.Value)
		}
		return nil
	case len(args) >= 3 && args[0] == "add":
		claim := models.Claim{Type: args[1], Value: strings.Join(args[2:], " ")}
		return a.users.AddClaims(ctx, user.ID, claim)
	case len(args) == 2 && args[0] == "remove":
		return a.users.RemoveClaims(ctx, user.ID, args[1])
	default:
		return usage("claims [add <type> <value>|remove <type>]")
	}
}

// Logins lists the user's external logins, or links/unlinks one.
func (a *App) Logins(ctx context.Context, args []string) error {
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	switch {
	case len(args) == 0:
		logins, err := a.users.GetLogins(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(logins) == 0 {
			a.println("No external logins")
		}
		for _, l := range logins {
			a.printf("%s %s %s\n", l.LoginProvider, l.ProviderKey, orDash(l.ProviderDisplayName))
		}
		return nil
	case (len(args) == 3 || len(args) == 4) && args[0] == "add":
		login := models.Login{LoginProvider: args[1], ProviderKey: args[2]}
		if len(args) == 4 {
			login.ProviderDisplayName = args[3]
		}
		return a.users.AddLogin(ctx, user.ID, login)
	case len(args) == 3 && args[0] == "remove":
		if err := a.users.RemoveLogin(ctx, user.ID, args[1], args[2]); err != nil {
			return err
		}
		return a.refresh(ctx, user.ID)
	default:
		return usage("logins [add <provider> <key> [name]|remove <provider> <key>]")
	}
}
