package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlite/internal/backup"
	"chatlite/internal/config"
	"chatlite/internal/logging"
	"chatlite/internal/store"
)

// newTestApp builds an App on the in-memory store with delivery timers far
// in the future, so message statuses stay exactly where commands put them.
func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DeliveredAfter = time.Hour
	cfg.SeenAfter = 2 * time.Hour

	a := newApp(cfg, logging.NopLogger{}, store.NewMemory())
	var out bytes.Buffer
	a.out = &out
	t.Cleanup(a.sim.Shutdown)
	return a, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = old })
}

func feed(a *App, lines ...string) {
	a.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestApp_RegisterEstablishesSession(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)
	stubPassword(t, "pw")

	feed(a, "Dana", "dana@example.com")
	require.NoError(t, a.Register(ctx))

	require.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome, Dana!")

	s := a.users.GetSession(ctx)
	require.NotNil(t, s)
	assert.Equal(t, a.currentUser.ID, s.UserID)
}

func TestApp_LoginRejectsBadSecret(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)
	require.NoError(t, a.Reset(ctx))

	stubPassword(t, "wrong")
	feed(a, "alice@example.com")
	require.Error(t, a.Login(ctx))

	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "invalid")
}

func TestApp_ContactAndChatFlow(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)
	require.NoError(t, a.Reset(ctx))
	stubPassword(t, backup.DemoSecret)

	// Alice requests Bob.
	feed(a, "alice@example.com")
	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.AddContact(ctx, "bob@example.com"))
	assert.Contains(t, out.String(), "Contact request sent to Bob")

	// Chatting before acceptance is refused.
	require.NoError(t, a.Open(ctx, "bob@example.com"))
	assert.Contains(t, out.String(), "not an accepted contact")
	assert.Empty(t, a.activeConv)

	// Bob accepts and says hi.
	require.NoError(t, a.Logout(ctx))
	feed(a, "bob@example.com")
	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.AcceptContact(ctx, "alice@example.com"))
	require.NoError(t, a.Open(ctx, "alice@example.com"))
	require.NotEmpty(t, a.activeConv)

	out.Reset()
	require.NoError(t, a.Send(ctx, "hi alice :)"))
	assert.Contains(t, out.String(), "hi alice 😊")
	assert.Contains(t, out.String(), "✓")

	msgs := a.msgs.ByConversation(ctx, a.activeConv)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi alice 😊", msgs[0].Text)

	// Alice sees one unread conversation from Bob.
	require.NoError(t, a.Logout(ctx))
	feed(a, "alice@example.com")
	require.NoError(t, a.Login(ctx))
	out.Reset()
	require.NoError(t, a.Chats(ctx))
	assert.Contains(t, out.String(), "Bob")
	assert.Contains(t, out.String(), "[1 unread]")
}

func TestApp_CommandsRequireLogin(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)

	require.Error(t, a.Search(ctx, "bob"))
	require.Error(t, a.Chats(ctx))
	require.Error(t, a.Send(ctx, "hello"))
	assert.Contains(t, out.String(), "Please log in first")
}

func TestApp_ResetReturnsToFirstRunState(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)
	stubPassword(t, "pw")

	feed(a, "Dana", "dana@example.com")
	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.Reset(ctx))

	assert.False(t, a.isLoggedIn())
	assert.Nil(t, a.users.GetSession(ctx))
	assert.Nil(t, a.users.FindByEmail(ctx, "dana@example.com"))
	require.NotNil(t, a.users.FindByEmail(ctx, "alice@example.com"))
	assert.Contains(t, out.String(), "Reset done")
}

func TestStatusGlyph(t *testing.T) {
	assert.Equal(t, "✓", statusGlyph("sent"))
	assert.Equal(t, "✓✓", statusGlyph("delivered"))
	assert.Equal(t, "✓✓ (seen)", statusGlyph("seen"))
}
