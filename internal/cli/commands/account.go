package commands

import (
	"context"
	"fmt"

	"GroceryWise/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and log in" }
func (registerCmd) Usage() string       { return "register <email> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	client := newClient(cfg)
	u, err := client.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered %s (id %d)\n", u.Email, u.ID)
	if err := client.Login(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("registered, but login failed: %w", err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the access token" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	if err := newClient(cfg).Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored access token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := newClient(cfg).Logout(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the current account" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	u, err := newClient(cfg).Whoami(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s (id %d, active: %t)\n", u.Email, u.ID, u.IsActive)
	fmt.Fprintf(Out, "Member since %s\n", u.CreatedAt.Format("2006-01-02"))
	return nil
}

type passwdCmd struct{}

func (passwdCmd) Name() string        { return "passwd" }
func (passwdCmd) Description() string { return "Change the account password" }
func (passwdCmd) Usage() string       { return "passwd <current> <new>" }

func (passwdCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	if err := newClient(cfg).ChangePassword(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Password updated successfully")
	return nil
}

type unregisterCmd struct{}

func (unregisterCmd) Name() string        { return "unregister" }
func (unregisterCmd) Description() string { return "Delete the account and its grocery list" }
func (unregisterCmd) Usage() string       { return "unregister" }

func (unregisterCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := newClient(cfg).Unregister(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Account deleted")
	return nil
}

func init() {
	RegisterCmd(registerCmd{})
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(statusCmd{})
	RegisterCmd(passwdCmd{})
	RegisterCmd(unregisterCmd{})
}
