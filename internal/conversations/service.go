// Package conversations manages conversation records and their membership
// rows. It is independent of the social graph; callers gate conversation
// creation on an accepted contact themselves.
package conversations

import (
	"context"

	"chatlite/internal/logging"
	"chatlite/internal/models"
	"chatlite/internal/store"
)

// Direct pairs a conversation with the other member's user id, from one
// user's point of view. The conversation list view is built from these.
type Direct struct {
	Conversation models.Conversation
	PeerID       string
}

// Directory defines the conversation directory operations.
//
// AddMember deliberately enforces neither a two-member maximum nor
// duplicate-row prevention; callers add each side exactly once when
// establishing a direct conversation. GetOrCreateDirect performs three
// separate store writes (conversation, member, member); a fault in between
// can strand a one-member conversation — Reconcile prunes those on startup.
type Directory interface {
	FindBetween(ctx context.Context, userA, userB string) *models.Conversation
	Create(ctx context.Context) (*models.Conversation, error)
	AddMember(ctx context.Context, conversationID, userID string) error
	GetOrCreateDirect(ctx context.Context, userA, userB string) (*models.Conversation, error)
	Members(ctx context.Context, conversationID string) []string
	ListForUser(ctx context.Context, userID string) []Direct
	Reconcile(ctx context.Context) (int, error)
}

type directory struct {
	store store.Store
	log   logging.Logger
}

func NewDirectory(st store.Store, log logging.Logger) Directory {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &directory{store: st, log: log}
}

// FindBetween returns the conversation whose membership contains both users,
// or nil. With only direct conversations in the system, "contains both"
// and "equals exactly {A,B}" coincide.
func (d *directory) FindBetween(ctx context.Context, userA, userB string) *models.Conversation {
	members := store.LoadAs[models.ConversationMember](ctx, d.store, store.ConversationMembers)

	for _, conv := range store.LoadAs[models.Conversation](ctx, d.store, store.Conversations) {
		hasA, hasB := false, false
		for _, m := range members {
			if m.ConversationID != conv.ID {
				continue
			}
			if m.UserID == userA {
				hasA = true
			}
			if m.UserID == userB {
				hasB = true
			}
		}
		if hasA && hasB {
			return &conv
		}
	}
	return nil
}

func (d *directory) Create(ctx context.Context) (*models.Conversation, error) {
	conv := models.NewConversation()
	all := store.LoadAs[models.Conversation](ctx, d.store, store.Conversations)
	all = append(all, conv)
	if err := store.SaveAs(ctx, d.store, store.Conversations, all); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (d *directory) AddMember(ctx context.Context, conversationID, userID string) error {
	members := store.LoadAs[models.ConversationMember](ctx, d.store, store.ConversationMembers)
	members = append(members, models.ConversationMember{
		ConversationID: conversationID,
		UserID:         userID,
	})
	return store.SaveAs(ctx, d.store, store.ConversationMembers, members)
}

// GetOrCreateDirect is the composite operation consumers actually want:
// find the direct conversation between the two users, creating it with both
// members when absent.
func (d *directory) GetOrCreateDirect(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	if existing := d.FindBetween(ctx, userA, userB); existing != nil {
		return existing, nil
	}

	conv, err := d.Create(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.AddMember(ctx, conv.ID, userA); err != nil {
		return nil, err
	}
	if err := d.AddMember(ctx, conv.ID, userB); err != nil {
		return nil, err
	}

	d.log.Info(ctx, "conversation created", "conversation_id", conv.ID, "a", userA, "b", userB)
	return conv, nil
}

// Members returns the user ids belonging to a conversation, in insertion
// order.
func (d *directory) Members(ctx context.Context, conversationID string) []string {
	var out []string
	for _, m := range store.LoadAs[models.ConversationMember](ctx, d.store, store.ConversationMembers) {
		if m.ConversationID == conversationID {
			out = append(out, m.UserID)
		}
	}
	return out
}

// ListForUser returns every conversation the user belongs to, each paired
// with the other member. Conversations without an identifiable peer (mid-
// creation strays) are skipped.
func (d *directory) ListForUser(ctx context.Context, userID string) []Direct {
	members := store.LoadAs[models.ConversationMember](ctx, d.store, store.ConversationMembers)

	var out []Direct
	for _, conv := range store.LoadAs[models.Conversation](ctx, d.store, store.Conversations) {
		mine, peer := false, ""
		for _, m := range members {
			if m.ConversationID != conv.ID {
				continue
			}
			if m.UserID == userID {
				mine = true
			} else {
				peer = m.UserID
			}
		}
		if mine && peer != "" {
			out = append(out, Direct{Conversation: conv, PeerID: peer})
		}
	}
	return out
}

// Reconcile prunes conversations with fewer than two members, along with
// their orphan membership rows. It repairs the damage a crash between the
// conversation write and the second membership write can leave behind.
// Returns the number of conversations removed.
func (d *directory) Reconcile(ctx context.Context) (int, error) {
	convs := store.LoadAs[models.Conversation](ctx, d.store, store.Conversations)
	members := store.LoadAs[models.ConversationMember](ctx, d.store, store.ConversationMembers)

	counts := make(map[string]int, len(convs))
	for _, m := range members {
		counts[m.ConversationID]++
	}

	keepConvs := convs[:0]
	removed := 0
	pruned := make(map[string]bool)
	for _, c := range convs {
		if counts[c.ID] < 2 {
			removed++
			pruned[c.ID] = true
			continue
		}
		keepConvs = append(keepConvs, c)
	}
	if removed == 0 {
		return 0, nil
	}

	keepMembers := members[:0]
	for _, m := range members {
		if !pruned[m.ConversationID] {
			keepMembers = append(keepMembers, m)
		}
	}

	if err := store.SaveAs(ctx, d.store, store.Conversations, keepConvs); err != nil {
		return 0, err
	}
	if err := store.SaveAs(ctx, d.store, store.ConversationMembers, keepMembers); err != nil {
		return 0, err
	}

	d.log.Info(ctx, "pruned incomplete conversations", "count", removed)
	return removed, nil
}
