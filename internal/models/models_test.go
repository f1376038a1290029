package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_NormalizesFields(t *testing.T) {
	u := NewUser("  Alice@Example.COM ", "  Alice Johnson  ", "abc")

	require.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "Alice Johnson", u.Name)
	assert.Equal(t, "abc", u.Secret)
	assert.InDelta(t, time.Now().UnixMilli(), u.CreatedAt, 2000)
}

func TestNewContact_StartsPending(t *testing.T) {
	c := NewContact("owner", "peer")

	require.NotEmpty(t, c.ID)
	assert.Equal(t, "owner", c.OwnerID)
	assert.Equal(t, "peer", c.ContactID)
	assert.Equal(t, ContactPending, c.Status)
}

func TestNewMessage_TrimsAndStartsSent(t *testing.T) {
	m := NewMessage("conv", "sender", "  hello  ")

	require.NotEmpty(t, m.ID)
	assert.Equal(t, "hello", m.Text)
	assert.Equal(t, MessageSent, m.Status)
}

func TestMessageStatus_Next(t *testing.T) {
	assert.Equal(t, MessageDelivered, MessageSent.Next())
	assert.Equal(t, MessageSeen, MessageDelivered.Next())
	assert.Equal(t, MessageStatus(""), MessageSeen.Next())
	assert.Equal(t, MessageStatus(""), MessageStatus("bogus").Next())
}
