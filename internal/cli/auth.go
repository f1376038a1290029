package cli

import (
	"context"
	"fmt"
)

// Register prompts for a name, an email and a password, creates the account
// and logs the new user in, the way the original signup screen does.
func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	secret, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.users.Register(ctx, email, name, secret)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if err := a.users.SetSession(ctx, user.ID); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	a.currentUser = user
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	return nil
}

// Login authenticates against the local user collection and persists the
// session so the next run resumes logged in.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	secret, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.users.Login(ctx, email, secret)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if err := a.users.SetSession(ctx, user.ID); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	a.currentUser = user
	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Name)
	return nil
}

// Logout clears the persisted session and cancels every pending delivery
// timer so nothing fires for the previous user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.users.ClearSession(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.sim.Shutdown()
	a.currentUser = nil
	a.activeConv = ""
	a.activePeer = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
