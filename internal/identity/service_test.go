package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlite/internal/common"
	"chatlite/internal/store"
)

func newManager(t *testing.T) (Manager, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	return NewManager(st, nil), st
}

func TestRegister_NormalizesAndPersists(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	u, err := m.Register(ctx, "  Alice@Example.COM ", " Alice Johnson ", "abc")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "Alice Johnson", u.Name)

	found := m.FindByEmail(ctx, "ALICE@example.com")
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)
}

func TestRegister_DuplicateEmailDiffersOnlyByCaseAndWhitespace(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "alice@example.com", "Alice", "abc")
	require.NoError(t, err)

	_, err = m.Register(ctx, "  ALICE@Example.com  ", "Other Alice", "xyz")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorDuplicateEmail)
}

func TestRegister_PersistenceFailureSurfaces(t *testing.T) {
	m, st := newManager(t)
	ctx := context.Background()

	st.FailNextSave(errors.New("disk full"))

	_, err := m.Register(ctx, "alice@example.com", "Alice", "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorPersistence)

	// Nothing durable happened, so the email is free again.
	_, err = m.Register(ctx, "alice@example.com", "Alice", "abc")
	require.NoError(t, err)
}

func TestFindByID_AbsentIsNilNotError(t *testing.T) {
	m, _ := newManager(t)
	assert.Nil(t, m.FindByID(context.Background(), "missing"))
	assert.Nil(t, m.FindByEmail(context.Background(), "missing@example.com"))
}

func TestLogin_VerbatimSecretCompare(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "alice@example.com", "Alice", "abc")
	require.NoError(t, err)

	u, err := m.Login(ctx, "Alice@Example.com", "abc")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	_, err = m.Login(ctx, "alice@example.com", "ABC")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)

	_, err = m.Login(ctx, "nobody@example.com", "abc")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
}

func TestSession_AtMostOneRecord(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	assert.Nil(t, m.GetSession(ctx))

	require.NoError(t, m.SetSession(ctx, "u1"))
	s := m.GetSession(ctx)
	require.NotNil(t, s)
	assert.Equal(t, "u1", s.UserID)

	// Setting again replaces wholesale.
	require.NoError(t, m.SetSession(ctx, "u2"))
	s = m.GetSession(ctx)
	require.NotNil(t, s)
	assert.Equal(t, "u2", s.UserID)

	require.NoError(t, m.ClearSession(ctx))
	assert.Nil(t, m.GetSession(ctx))
}

func TestSearch_MatchesEmailOrNameExcludingViewer(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	alice, err := m.Register(ctx, "alice@example.com", "Alice Johnson", "abc")
	require.NoError(t, err)
	_, err = m.Register(ctx, "bob@example.com", "Bob Smith", "xyz")
	require.NoError(t, err)
	_, err = m.Register(ctx, "charlie@example.com", "Charlie Brown", "123")
	require.NoError(t, err)

	got := m.Search(ctx, alice.ID, "bob")
	require.Len(t, got, 1)
	assert.Equal(t, "bob@example.com", got[0].Email)

	got = m.Search(ctx, alice.ID, "EXAMPLE.COM")
	assert.Len(t, got, 2, "viewer must be excluded")

	got = m.Search(ctx, alice.ID, "brown")
	require.Len(t, got, 1)
	assert.Equal(t, "charlie@example.com", got[0].Email)
}
