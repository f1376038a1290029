// Package contacts manages contact-relationship records and their
// request/accept lifecycle.
package contacts

import (
	"context"

	"chatlite/internal/common"
	"chatlite/internal/logging"
	"chatlite/internal/models"
	"chatlite/internal/store"
)

// ViewStatus is a contact's status as one particular viewer sees it. A
// still-pending record reads "pending" to the requester and "request" to the
// counterpart; an accepted record reads the same to both sides.
type ViewStatus string

const (
	ViewPending  ViewStatus = "pending"
	ViewRequest  ViewStatus = "request"
	ViewAccepted ViewStatus = "accepted"
)

// Manager defines social graph operations.
//
// The duplicate check in Request is symmetric: a prior record with either
// {owner=A, contact=B} or {owner=B, contact=A} counts, regardless of
// direction.
type Manager interface {
	Request(ctx context.Context, ownerID, contactID string) (*models.Contact, error)
	Accept(ctx context.Context, contactID string) error
	Between(ctx context.Context, userA, userB string) *models.Contact
	ForUser(ctx context.Context, userID string) []models.Contact
}

type manager struct {
	store store.Store
	log   logging.Logger
}

func NewManager(st store.Store, log logging.Logger) Manager {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &manager{store: st, log: log}
}

// Request records a pending contact request from owner to contact.
// Self-requests are rejected; the original UI merely hid the current user
// from search results, which left the data layer unguarded.
func (m *manager) Request(ctx context.Context, ownerID, contactID string) (*models.Contact, error) {
	if ownerID == contactID {
		return nil, common.ErrorSelfContact
	}
	if existing := m.Between(ctx, ownerID, contactID); existing != nil {
		return nil, common.ErrorDuplicateContact
	}

	contact := models.NewContact(ownerID, contactID)
	all := store.LoadAs[models.Contact](ctx, m.store, store.Contacts)
	all = append(all, contact)
	if err := store.SaveAs(ctx, m.store, store.Contacts, all); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "contact requested", "contact_id", contact.ID, "owner", ownerID, "counterpart", contactID)
	return &contact, nil
}

// Accept flips the contact to accepted. Re-accepting is harmless.
func (m *manager) Accept(ctx context.Context, contactID string) error {
	all := store.LoadAs[models.Contact](ctx, m.store, store.Contacts)
	for i := range all {
		if all[i].ID == contactID {
			all[i].Status = models.ContactAccepted
			return store.SaveAs(ctx, m.store, store.Contacts, all)
		}
	}
	return common.ErrorNotFound
}

// Between returns the contact record linking the two users, in either
// direction, or nil when none exists.
func (m *manager) Between(ctx context.Context, userA, userB string) *models.Contact {
	for _, c := range store.LoadAs[models.Contact](ctx, m.store, store.Contacts) {
		if (c.OwnerID == userA && c.ContactID == userB) ||
			(c.OwnerID == userB && c.ContactID == userA) {
			return &c
		}
	}
	return nil
}

// ForUser returns every contact record in which the user is either side.
func (m *manager) ForUser(ctx context.Context, userID string) []models.Contact {
	var out []models.Contact
	for _, c := range store.LoadAs[models.Contact](ctx, m.store, store.Contacts) {
		if c.OwnerID == userID || c.ContactID == userID {
			out = append(out, c)
		}
	}
	return out
}

// View returns the contact's status from the given viewer's side.
func View(contact models.Contact, viewerID string) ViewStatus {
	if contact.Status == models.ContactAccepted {
		return ViewAccepted
	}
	if contact.OwnerID == viewerID {
		return ViewPending
	}
	return ViewRequest
}

// Counterpart returns the id of the other user on a contact record.
func Counterpart(contact models.Contact, viewerID string) string {
	if contact.OwnerID == viewerID {
		return contact.ContactID
	}
	return contact.OwnerID
}
