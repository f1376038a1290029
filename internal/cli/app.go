package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"chatlite/internal/backup"
	"chatlite/internal/config"
	"chatlite/internal/contacts"
	"chatlite/internal/conversations"
	"chatlite/internal/delivery"
	"chatlite/internal/identity"
	"chatlite/internal/logging"
	"chatlite/internal/messages"
	"chatlite/internal/models"
	"chatlite/internal/store"
)

// App wires the domain services together and holds the per-run UI state:
// the logged-in user and the conversation currently on screen.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *store.SQLite
	users   identity.Manager
	friends contacts.Manager
	convs   conversations.Directory
	msgs    messages.Log
	backup  backup.Service
	sim     *delivery.Simulator

	currentUser *models.User
	activeConv  string
	activePeer  *models.User

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DatabaseDSN, log)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	a := newApp(cfg, log, db)
	a.db = db
	return a, nil
}

// newApp builds an App on an already-open store. Tests use it with the
// in-memory store.
func newApp(cfg *config.Config, log logging.Logger, st store.Store) *App {
	ml := messages.NewLog(st, log)
	sched := delivery.NewTimerScheduler(delivery.ApplyTo(ml, log), log)
	sim := delivery.NewSimulator(sched, delivery.Options{
		DeliveredAfter: cfg.DeliveredAfter,
		SeenAfter:      cfg.SeenAfter,
		Step:           cfg.DeliveryStep,
	})

	return &App{
		config:  cfg,
		log:     log,
		users:   identity.NewManager(st, log),
		friends: contacts.NewManager(st, log),
		convs:   conversations.NewDirectory(st, log),
		msgs:    ml,
		backup:  backup.NewService(st, log),
		sim:     sim,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.currentUser != nil
}

// Run resumes the persisted session, repairs any incomplete conversations
// left by a previous crash, and hands control to the REPL. It blocks until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if s := a.users.GetSession(ctx); s != nil {
		a.currentUser = a.users.FindByID(ctx, s.UserID)
	}
	if n, err := a.convs.Reconcile(ctx); err != nil {
		a.log.Warn(ctx, "reconcile failed", "error", err)
	} else if n > 0 {
		a.log.Info(ctx, "pruned incomplete conversations", "count", n)
	}

	fmt.Fprintln(a.out, "chatlite (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// Close stops pending delivery timers and releases the database.
func (a *App) Close() {
	a.sim.Shutdown()
	if a.db != nil {
		_ = a.db.Close()
	}
}

// status renders the prompt suffix: the logged-in user and, when a chat is
// open, the peer name.
func (a *App) status() string {
	if a.currentUser == nil {
		return ""
	}
	s := a.currentUser.Name
	if a.activePeer != nil {
		s = s + " -> " + a.activePeer.Name
	}
	return "(" + s + ")"
}
