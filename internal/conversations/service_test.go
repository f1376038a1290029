package conversations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlite/internal/store"
)

func newDirectory(t *testing.T) Directory {
	t.Helper()
	return NewDirectory(store.NewMemory(), nil)
}

func TestGetOrCreateDirect_CreatesWithBothMembers(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	conv, err := d.GetOrCreateDirect(ctx, "alice", "bob")
	require.NoError(t, err)
	require.NotNil(t, conv)

	members := d.Members(ctx, conv.ID)
	assert.Equal(t, []string{"alice", "bob"}, members)
}

func TestGetOrCreateDirect_SecondCallReturnsSameConversation(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	first, err := d.GetOrCreateDirect(ctx, "alice", "bob")
	require.NoError(t, err)

	second, err := d.GetOrCreateDirect(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "no duplicate conversation for the same pair")

	// Order of arguments must not matter either.
	third, err := d.GetOrCreateDirect(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)
}

func TestFindBetween_AbsentIsNil(t *testing.T) {
	d := newDirectory(t)
	assert.Nil(t, d.FindBetween(context.Background(), "alice", "bob"))
}

func TestFindBetween_RequiresBothMembers(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	conv, err := d.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, d.AddMember(ctx, conv.ID, "alice"))

	assert.Nil(t, d.FindBetween(ctx, "alice", "bob"))

	require.NoError(t, d.AddMember(ctx, conv.ID, "bob"))
	found := d.FindBetween(ctx, "alice", "bob")
	require.NotNil(t, found)
	assert.Equal(t, conv.ID, found.ID)
}

func TestListForUser_PairsWithPeer(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	ab, err := d.GetOrCreateDirect(ctx, "alice", "bob")
	require.NoError(t, err)
	ac, err := d.GetOrCreateDirect(ctx, "alice", "charlie")
	require.NoError(t, err)
	_, err = d.GetOrCreateDirect(ctx, "bob", "charlie")
	require.NoError(t, err)

	list := d.ListForUser(ctx, "alice")
	require.Len(t, list, 2)

	peers := map[string]string{}
	for _, item := range list {
		peers[item.Conversation.ID] = item.PeerID
	}
	assert.Equal(t, "bob", peers[ab.ID])
	assert.Equal(t, "charlie", peers[ac.ID])
}

func TestReconcile_PrunesIncompleteConversations(t *testing.T) {
	d := newDirectory(t)
	ctx := context.Background()

	// A healthy pair and two casualties of a mid-creation crash: one with a
	// single member, one with none.
	healthy, err := d.GetOrCreateDirect(ctx, "alice", "bob")
	require.NoError(t, err)

	oneMember, err := d.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, d.AddMember(ctx, oneMember.ID, "alice"))

	_, err = d.Create(ctx)
	require.NoError(t, err)

	removed, err := d.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	// The healthy conversation survives, members intact.
	found := d.FindBetween(ctx, "alice", "bob")
	require.NotNil(t, found)
	assert.Equal(t, healthy.ID, found.ID)
	assert.Len(t, d.Members(ctx, healthy.ID), 2)

	// The stray membership row is gone too.
	assert.Empty(t, d.Members(ctx, oneMember.ID))

	// A clean state is a no-op.
	removed, err = d.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
