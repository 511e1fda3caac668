package cli

import "context"

// Codes issues a fresh set of recovery codes, or with "count" reports how
// many are left.
func (a *App) Codes(ctx context.Context, args []string) error {
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	switch {
	case len(args) == 1 && args[0] == "count":
		n, err := a.users.CountRecoveryCodes(ctx, user.ID)
		if err != nil {
			return err
		}
		a.printf("%d recovery codes left\n", n)
		return nil
	case len(args) == 0:
		codes, err := a.users.GenerateRecoveryCodes(ctx, user.ID)
		if err != nil {
			return err
		}
		a.println("Store these codes somewhere safe, they are shown once:")
		for _, c := range codes {
			a.println("  " + c)
		}
		return nil
	default:
		return usage("codes [count]")
	}
}

func (a *App) Redeem(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("redeem <code>")
	}
	user, err := a.current(ctx)
	if err != nil {
		return err
	}
	if err := a.users.RedeemRecoveryCode(ctx, user.ID, args[0]); err != nil {
		return err
	}
	a.println("Code accepted")
	return nil
}

// AuthKey shows the authenticator key, or with "reset" replaces it.
func (a *App) AuthKey(ctx context.Context, args []string) error {
	user, err := a.current(ctx)
	if err != nil {
		return err
	}

	switch {
	case len(args) == 0:
		key, err := a.users.GetAuthenticatorKey(ctx, user.ID)
		if err != nil {
			return err
		}
		a.println(orDash(key))
		return nil
	case len(args) == 1 && args[0] == "reset":
		key, err := a.users.ResetAuthenticatorKey(ctx, user.ID)
		if err != nil {
			return err
		}
		if err := a.refresh(ctx, user.ID); err != nil {
			return err
		}
		a.println(key)
		return nil
	default:
		return usage("authkey [reset]")
	}
}
