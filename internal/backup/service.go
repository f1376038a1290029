// Package backup implements the bulk export/import operation over the
// collection store and the reset-to-demo operation other components rely on
// for fixtures.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"chatlite/internal/logging"
	"chatlite/internal/models"
	"chatlite/internal/store"
)

// Demo dataset seeded by Reset. The fixed ids and the "123" secret are part
// of the reset contract; tests and the CLI's first-run experience depend on
// them.
const DemoSecret = "123"

func demoUsers() []models.User {
	now := time.Now().UnixMilli()
	return []models.User{
		{ID: "user-alice-123", Email: "alice@example.com", Name: "Alice Johnson", Secret: DemoSecret, CreatedAt: now},
		{ID: "user-bob-456", Email: "bob@example.com", Name: "Bob Smith", Secret: DemoSecret, CreatedAt: now},
		{ID: "user-charlie-789", Email: "charlie@example.com", Name: "Charlie Brown", Secret: DemoSecret, CreatedAt: now},
	}
}

// Service defines backup and reset operations.
type Service interface {
	// ExportAll snapshots every collection into a name→records mapping.
	ExportAll(ctx context.Context) map[string][]json.RawMessage

	// ImportAll writes each named collection from the mapping. Collections
	// absent from the mapping are left untouched; the writes are atomic per
	// collection only.
	ImportAll(ctx context.Context, data map[string][]json.RawMessage) error

	// Reset clears every collection, reseeds the three demo users and clears
	// the session.
	Reset(ctx context.Context) error

	ExportToFile(ctx context.Context, path string) error
	ImportFromFile(ctx context.Context, path string) error
}

type service struct {
	store store.Store
	log   logging.Logger
}

func NewService(st store.Store, log logging.Logger) Service {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &service{store: st, log: log}
}

func (s *service) ExportAll(ctx context.Context) map[string][]json.RawMessage {
	out := make(map[string][]json.RawMessage, len(store.Names()))
	for _, name := range store.Names() {
		out[name] = s.store.Load(ctx, name)
	}
	return out
}

func (s *service) ImportAll(ctx context.Context, data map[string][]json.RawMessage) error {
	for _, name := range store.Names() {
		records, ok := data[name]
		if !ok {
			continue
		}
		if err := s.store.Save(ctx, name, records); err != nil {
			return fmt.Errorf("import %q: %w", name, err)
		}
	}
	return nil
}

func (s *service) Reset(ctx context.Context) error {
	for _, name := range store.Names() {
		if err := s.store.Save(ctx, name, nil); err != nil {
			return fmt.Errorf("clear %q: %w", name, err)
		}
	}
	if err := store.SaveAs(ctx, s.store, store.Users, demoUsers()); err != nil {
		return fmt.Errorf("seed demo users: %w", err)
	}

	s.log.Info(ctx, "store reset to demo dataset")
	return nil
}

func (s *service) ExportToFile(ctx context.Context, path string) error {
	data := s.ExportAll(ctx)
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func (s *service) ImportFromFile(ctx context.Context, path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}
	var data map[string][]json.RawMessage
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("unmarshal export: %w", err)
	}
	return s.ImportAll(ctx, data)
}
