// Package identity manages user records and the single active session
// pointer, on top of the collection store.
package identity

import (
	"context"
	"strings"

	"chatlite/internal/common"
	"chatlite/internal/logging"
	"chatlite/internal/models"
	"chatlite/internal/store"
)

// Manager defines identity and session operations.
//
// Contract:
//   - Lookups never fail: absence is a nil result.
//   - Register rejects a normalized-email duplicate with ErrorDuplicateEmail.
//   - Login compares the secret verbatim and does NOT establish a session;
//     the caller decides whether to call SetSession afterwards.
//   - The session collection holds at most one record; SetSession replaces
//     it wholesale.
type Manager interface {
	Register(ctx context.Context, email, name, secret string) (*models.User, error)
	SaveUser(ctx context.Context, user models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) *models.User
	FindByID(ctx context.Context, id string) *models.User
	Login(ctx context.Context, email, secret string) (*models.User, error)
	Search(ctx context.Context, viewerID, term string) []models.User

	SetSession(ctx context.Context, userID string) error
	GetSession(ctx context.Context) *models.Session
	ClearSession(ctx context.Context) error
}

type manager struct {
	store store.Store
	log   logging.Logger
}

func NewManager(st store.Store, log logging.Logger) Manager {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &manager{store: st, log: log}
}

// Register builds a new user and saves it, rejecting duplicate emails.
func (m *manager) Register(ctx context.Context, email, name, secret string) (*models.User, error) {
	return m.SaveUser(ctx, models.NewUser(email, name, secret))
}

func (m *manager) SaveUser(ctx context.Context, user models.User) (*models.User, error) {
	users := store.LoadAs[models.User](ctx, m.store, store.Users)

	normalized := models.NormalizeEmail(user.Email)
	for _, u := range users {
		if u.Email == normalized {
			return nil, common.ErrorDuplicateEmail
		}
	}

	user.Email = normalized
	users = append(users, user)
	if err := store.SaveAs(ctx, m.store, store.Users, users); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	return &user, nil
}

func (m *manager) FindByEmail(ctx context.Context, email string) *models.User {
	normalized := models.NormalizeEmail(email)
	for _, u := range store.LoadAs[models.User](ctx, m.store, store.Users) {
		if u.Email == normalized {
			return &u
		}
	}
	return nil
}

func (m *manager) FindByID(ctx context.Context, id string) *models.User {
	for _, u := range store.LoadAs[models.User](ctx, m.store, store.Users) {
		if u.ID == id {
			return &u
		}
	}
	return nil
}

// Login authenticates by email and verbatim secret comparison. This is a
// demo credential model; secrets are stored as entered.
func (m *manager) Login(ctx context.Context, email, secret string) (*models.User, error) {
	u := m.FindByEmail(ctx, email)
	if u == nil || u.Secret != secret {
		return nil, common.ErrorInvalidCredentials
	}
	return u, nil
}

// Search returns users whose email or name contains term
// (case-insensitive), excluding the viewer.
func (m *manager) Search(ctx context.Context, viewerID, term string) []models.User {
	needle := strings.ToLower(strings.TrimSpace(term))

	var out []models.User
	for _, u := range store.LoadAs[models.User](ctx, m.store, store.Users) {
		if u.ID == viewerID {
			continue
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Email), needle) ||
			strings.Contains(strings.ToLower(u.Name), needle) {
			out = append(out, u)
		}
	}
	return out
}

func (m *manager) SetSession(ctx context.Context, userID string) error {
	session := models.NewSession(userID)
	return store.SaveAs(ctx, m.store, store.Session, []models.Session{session})
}

func (m *manager) GetSession(ctx context.Context) *models.Session {
	sessions := store.LoadAs[models.Session](ctx, m.store, store.Session)
	if len(sessions) == 0 {
		return nil
	}
	return &sessions[0]
}

func (m *manager) ClearSession(ctx context.Context) error {
	return store.SaveAs(ctx, m.store, store.Session, []models.Session{})
}
