// Package store implements the collection store: named, ordered lists of
// flat JSON records persisted as a unit. Every other component reads and
// writes through it.
//
// # Contract
//
// Load never fails: an absent or corrupt collection is logged and treated as
// empty. Save replaces the whole named collection; the replacement is atomic
// with respect to that single collection only. Two saves to two different
// collections are NOT jointly atomic — a fault between them can leave
// cross-collection invariants transiently violated. The managers built on
// top tolerate this (see conversations.Reconcile).
//
// Two implementations are provided: Memory (tests, no I/O) and SQLite
// (durable, whole-collection replacement inside one transaction).
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection names. The session collection holds zero or one record.
const (
	Users               = "users"
	Contacts            = "contacts"
	Conversations       = "conversations"
	ConversationMembers = "conversation-members"
	Messages            = "messages"
	Session             = "session"
)

// Names returns every collection name, in a stable order. Export and reset
// iterate over this.
func Names() []string {
	return []string{Users, Contacts, Conversations, ConversationMembers, Messages, Session}
}

// Store is the persistence substrate injected into every manager.
type Store interface {
	// Load returns the ordered records of a named collection. Absent or
	// corrupt collections yield an empty result, never an error.
	Load(ctx context.Context, name string) []json.RawMessage

	// Save replaces the named collection with the given records. A returned
	// error wraps common.ErrorPersistence; the caller must treat the overall
	// action as failed.
	Save(ctx context.Context, name string, records []json.RawMessage) error
}

// LoadAs loads a collection and unmarshals each record into T. Records that
// do not unmarshal are skipped; Load has already validated the raw JSON, so
// this only drops records whose shape predates the current model.
func LoadAs[T any](ctx context.Context, s Store, name string) []T {
	raw := s.Load(ctx, name)
	out := make([]T, 0, len(raw))
	for _, rec := range raw {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SaveAs marshals items and replaces the named collection with them.
func SaveAs[T any](ctx context.Context, s Store, name string, items []T) error {
	records := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		rec, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal %q record: %w", name, err)
		}
		records = append(records, rec)
	}
	return s.Save(ctx, name, records)
}
