// Package models defines the flat record types persisted in the collection
// store, and the factories that stamp ids and timestamps at creation time.
//
// Records hold no live references to each other; relationships are resolved
// by the managers that scan collections on foreign-key-like fields.
// Timestamps are Unix milliseconds.
package models

import (
	"strings"
	"time"

	"chatlite/internal/common"
)

// ContactStatus is the persisted state of a contact relationship.
type ContactStatus string

const (
	ContactPending  ContactStatus = "pending"
	ContactAccepted ContactStatus = "accepted"
)

// MessageStatus is the delivery state of a message.
type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageSeen      MessageStatus = "seen"
)

// Next returns the status that follows s in the delivery lifecycle,
// or "" if s is terminal or unknown.
func (s MessageStatus) Next() MessageStatus {
	switch s {
	case MessageSent:
		return MessageDelivered
	case MessageDelivered:
		return MessageSeen
	}
	return ""
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Secret    string `json:"password"`
	CreatedAt int64  `json:"createdAt"`
}

type Session struct {
	UserID    string `json:"userId"`
	Timestamp int64  `json:"timestamp"`
}

type Contact struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"ownerId"`
	ContactID string        `json:"contactId"`
	Status    ContactStatus `json:"status"`
	CreatedAt int64         `json:"createdAt"`
}

type Conversation struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt"`
}

type ConversationMember struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
}

type Message struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversationId"`
	SenderID       string        `json:"senderId"`
	Text           string        `json:"text"`
	Time           int64         `json:"time"`
	Status         MessageStatus `json:"status"`
}

// NormalizeEmail lower-cases and trims an email address. All email lookups
// and the duplicate check go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// NewUser builds a User with a fresh id, normalized email and trimmed name.
// The secret is stored verbatim; this is a demo credential model.
func NewUser(email, name, secret string) User {
	return User{
		ID:        common.NewID(),
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		Secret:    secret,
		CreatedAt: nowMillis(),
	}
}

// NewContact builds a pending contact request from owner to contact.
func NewContact(ownerID, contactID string) Contact {
	return Contact{
		ID:        common.NewID(),
		OwnerID:   ownerID,
		ContactID: contactID,
		Status:    ContactPending,
		CreatedAt: nowMillis(),
	}
}

func NewConversation() Conversation {
	return Conversation{
		ID:        common.NewID(),
		CreatedAt: nowMillis(),
	}
}

// NewMessage builds a message in status "sent". Text is trimmed; any
// shorthand substitution happens before this point.
func NewMessage(conversationID, senderID, text string) Message {
	return Message{
		ID:             common.NewID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           strings.TrimSpace(text),
		Time:           nowMillis(),
		Status:         MessageSent,
	}
}

// NewSession points the single active session at the given user.
func NewSession(userID string) Session {
	return Session{UserID: userID, Timestamp: nowMillis()}
}
