// Package messages implements the ordered per-conversation message log and
// the delivery-status state machine.
package messages

import (
	"context"
	"sort"

	"chatlite/internal/common"
	"chatlite/internal/emoji"
	"chatlite/internal/logging"
	"chatlite/internal/models"
	"chatlite/internal/store"
)

// previewBudget is the character budget for conversation-list previews;
// longer texts are truncated and marked with an ellipsis.
const (
	previewBudget   = 30
	previewEllipsis = "..."
)

// Summary is the derived view used to render one row of a conversation list.
// LastActivity falls back to the conversation's creation time when no
// messages exist yet, which determines default list ordering (most recent
// first). Unread counts the viewer's incoming messages not yet seen.
type Summary struct {
	LastMessage  *models.Message
	Preview      string
	LastActivity int64
	Unread       int
}

// Log defines the message log operations.
//
// AdvanceStatus guards the state machine explicitly: only the exact next
// transition (sent→delivered, delivered→seen) is accepted; backward or
// skipped transitions return ErrorInvalidTransition. The store itself places
// no such constraint, so stale delivery timers are neutralized here.
type Log interface {
	Append(ctx context.Context, conversationID, senderID, rawText string) (*models.Message, error)
	ByConversation(ctx context.Context, conversationID string) []models.Message
	AdvanceStatus(ctx context.Context, messageID string, next models.MessageStatus) error
	Summary(ctx context.Context, conv models.Conversation, viewerID string) Summary
}

type messageLog struct {
	store store.Store
	log   logging.Logger
}

func NewLog(st store.Store, logger logging.Logger) Log {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &messageLog{store: st, log: logger}
}

// Append runs the text through the substitution pass, stamps id, timestamp
// and status "sent", persists and returns the stored record.
func (l *messageLog) Append(ctx context.Context, conversationID, senderID, rawText string) (*models.Message, error) {
	msg := models.NewMessage(conversationID, senderID, emoji.Replace(rawText))

	all := store.LoadAs[models.Message](ctx, l.store, store.Messages)
	all = append(all, msg)
	if err := store.SaveAs(ctx, l.store, store.Messages, all); err != nil {
		return nil, err
	}

	l.log.Debug(ctx, "message appended", "message_id", msg.ID, "conversation_id", conversationID)
	return &msg, nil
}

// ByConversation is the canonical read path: messages of one conversation,
// ascending by timestamp, id as tiebreaker so repeated calls between writes
// return an identical order.
func (l *messageLog) ByConversation(ctx context.Context, conversationID string) []models.Message {
	var out []models.Message
	for _, m := range store.LoadAs[models.Message](ctx, l.store, store.Messages) {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AdvanceStatus moves a message one step forward along sent→delivered→seen.
func (l *messageLog) AdvanceStatus(ctx context.Context, messageID string, next models.MessageStatus) error {
	all := store.LoadAs[models.Message](ctx, l.store, store.Messages)
	for i := range all {
		if all[i].ID != messageID {
			continue
		}
		if all[i].Status.Next() != next || next == "" {
			return common.ErrorInvalidTransition
		}
		all[i].Status = next
		return store.SaveAs(ctx, l.store, store.Messages, all)
	}
	return common.ErrorNotFound
}

// Summary derives the conversation-list row for one conversation as seen by
// viewerID.
func (l *messageLog) Summary(ctx context.Context, conv models.Conversation, viewerID string) Summary {
	msgs := l.ByConversation(ctx, conv.ID)

	s := Summary{LastActivity: conv.CreatedAt}
	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		s.LastMessage = &last
		s.Preview = truncatePreview(last.Text)
		s.LastActivity = last.Time
	}
	for _, m := range msgs {
		if m.SenderID != viewerID && m.Status != models.MessageSeen {
			s.Unread++
		}
	}
	return s
}

func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewBudget {
		return text
	}
	return string(runes[:previewBudget]) + previewEllipsis
}
