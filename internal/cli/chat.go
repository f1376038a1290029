package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"chatlite/internal/messages"
	"chatlite/internal/models"
)

// statusGlyph renders a delivery status as ticks, one for sent, two for
// delivered and a marked pair once the recipient has seen the message.
func statusGlyph(s models.MessageStatus) string {
	switch s {
	case models.MessageSeen:
		return "✓✓ (seen)"
	case models.MessageDelivered:
		return "✓✓"
	default:
		return "✓"
	}
}

func formatClock(ms int64) string {
	return time.UnixMilli(ms).Format("15:04")
}

// Chats lists the viewer's conversations, most recently active first, with
// a preview of the last message and the unread count.
func (a *App) Chats(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	directs := a.convs.ListForUser(ctx, a.currentUser.ID)
	if len(directs) == 0 {
		fmt.Fprintln(a.out, "No conversations yet")
		return nil
	}

	type row struct {
		peer    *models.User
		summary messages.Summary
	}
	rows := make([]row, 0, len(directs))
	for _, d := range directs {
		peer := a.users.FindByID(ctx, d.PeerID)
		if peer == nil {
			continue
		}
		rows = append(rows, row{peer: peer, summary: a.msgs.Summary(ctx, d.Conversation, a.currentUser.ID)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].summary.LastActivity > rows[j].summary.LastActivity
	})

	for _, r := range rows {
		preview := r.summary.Preview
		if preview == "" {
			preview = "(no messages)"
		}
		unread := ""
		if r.summary.Unread > 0 {
			unread = fmt.Sprintf(" [%d unread]", r.summary.Unread)
		}
		fmt.Fprintf(a.out, "%s  %s  %s%s\n", formatClock(r.summary.LastActivity), r.peer.Name, preview, unread)
	}
	return nil
}

// Open switches the REPL to a direct conversation with the given contact,
// creating it on first use. Opening replays the delivery simulation for the
// viewer's still-unconfirmed messages, like reloading the chat view does.
func (a *App) Open(ctx context.Context, email string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	peer := a.users.FindByEmail(ctx, email)
	if peer == nil {
		fmt.Fprintln(a.out, "No such user:", email)
		return nil
	}
	c := a.friends.Between(ctx, a.currentUser.ID, peer.ID)
	if c == nil || c.Status != models.ContactAccepted {
		fmt.Fprintf(a.out, "%s is not an accepted contact\n", peer.Name)
		return nil
	}

	conv, err := a.convs.GetOrCreateDirect(ctx, a.currentUser.ID, peer.ID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	a.activeConv = conv.ID
	a.activePeer = peer

	msgs := a.msgs.ByConversation(ctx, conv.ID)
	for _, m := range msgs {
		a.printMessage(m)
	}
	a.sim.ConversationOpened(a.currentUser.ID, msgs)
	return nil
}

// Send appends a message to the open conversation and arms its delivery
// simulation.
func (a *App) Send(ctx context.Context, text string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if a.activeConv == "" {
		fmt.Fprintln(a.out, "No conversation open; use: open <email>")
		return nil
	}

	msg, err := a.msgs.Append(ctx, a.activeConv, a.currentUser.ID, text)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.sim.MessageSent(*msg)
	a.printMessage(*msg)
	return nil
}

// CloseChat leaves the conversation view and cancels its pending timers.
func (a *App) CloseChat(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if a.activeConv == "" {
		return nil
	}
	a.sim.ConversationClosed(a.activeConv)
	a.activeConv = ""
	a.activePeer = nil
	return nil
}

func (a *App) printMessage(m models.Message) {
	name := "me"
	suffix := "  " + statusGlyph(m.Status)
	if m.SenderID != a.currentUser.ID {
		if a.activePeer != nil {
			name = a.activePeer.Name
		} else {
			name = m.SenderID
		}
		suffix = ""
	}
	fmt.Fprintf(a.out, "[%s] %s: %s%s\n", formatClock(m.Time), name, m.Text, suffix)
}
