package cli

import (
	"context"
	"errors"
	"fmt"

	"chatlite/internal/contacts"
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) requireLogin() error {
	if a.currentUser == nil {
		fmt.Fprintln(a.out, "Please log in first")
		return errNotLoggedIn
	}
	return nil
}

// Search lists users whose email or name contains the term, excluding the
// viewer. For each hit it also shows the contact standing, if any.
func (a *App) Search(ctx context.Context, term string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	hits := a.users.Search(ctx, a.currentUser.ID, term)
	if len(hits) == 0 {
		fmt.Fprintln(a.out, "No users found")
		return nil
	}
	for _, u := range hits {
		standing := ""
		if c := a.friends.Between(ctx, a.currentUser.ID, u.ID); c != nil {
			standing = fmt.Sprintf(" [%s]", contacts.View(*c, a.currentUser.ID))
		}
		fmt.Fprintf(a.out, "%s <%s>%s\n", u.Name, u.Email, standing)
	}
	return nil
}

// Contacts lists the viewer's contact records with viewer-relative status:
// "pending" for requests they sent, "request" for ones awaiting their
// acceptance, "accepted" once confirmed.
func (a *App) Contacts(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	list := a.friends.ForUser(ctx, a.currentUser.ID)
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No contacts yet")
		return nil
	}
	for _, c := range list {
		peer := a.users.FindByID(ctx, contacts.Counterpart(c, a.currentUser.ID))
		if peer == nil {
			continue
		}
		fmt.Fprintf(a.out, "%s <%s> [%s]\n", peer.Name, peer.Email, contacts.View(c, a.currentUser.ID))
	}
	return nil
}

// AddContact sends a contact request to the user with the given email.
func (a *App) AddContact(ctx context.Context, email string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	peer := a.users.FindByEmail(ctx, email)
	if peer == nil {
		fmt.Fprintln(a.out, "No such user:", email)
		return nil
	}
	if _, err := a.friends.Request(ctx, a.currentUser.ID, peer.ID); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Contact request sent to %s\n", peer.Name)
	return nil
}

// AcceptContact accepts the pending request linking the viewer and the user
// with the given email.
func (a *App) AcceptContact(ctx context.Context, email string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	peer := a.users.FindByEmail(ctx, email)
	if peer == nil {
		fmt.Fprintln(a.out, "No such user:", email)
		return nil
	}
	c := a.friends.Between(ctx, a.currentUser.ID, peer.ID)
	if c == nil {
		fmt.Fprintln(a.out, "No contact request from", peer.Name)
		return nil
	}
	if err := a.friends.Accept(ctx, c.ID); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintf(a.out, "You are now contacts with %s\n", peer.Name)
	return nil
}
