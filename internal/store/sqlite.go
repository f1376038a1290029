package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"chatlite/internal/common"
	"chatlite/internal/dbx"
	"chatlite/internal/logging"
	"chatlite/internal/store/migrations"
)

// SQLite is the durable Store implementation. Each collection lives as a run
// of (name, pos, record) rows; a save deletes and re-inserts the run inside
// one transaction, which makes the whole-collection replacement atomic for
// that collection and that collection only.
type SQLite struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens (creating if needed) the database at dsn, runs migrations and
// returns the store. The caller owns Close.
func Open(ctx context.Context, dsn string, log logging.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return NewSQLite(db, log), nil
}

// NewSQLite wraps an already-migrated database handle. Tests use this with an
// in-memory connection.
func NewSQLite(db *sql.DB, log logging.Logger) *SQLite {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &SQLite{db: db, log: log}
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func (s *SQLite) Load(ctx context.Context, name string) []json.RawMessage {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM collections WHERE name = ? ORDER BY pos`, name)
	if err != nil {
		s.log.Warn(ctx, "collection read failed, treating as empty", "name", name, "error", err)
		return nil
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var rec []byte
		if err := rows.Scan(&rec); err != nil {
			s.log.Warn(ctx, "collection record scan failed, treating as empty", "name", name, "error", err)
			return nil
		}
		if !json.Valid(rec) {
			s.log.Warn(ctx, "corrupt collection payload, treating as empty", "name", name)
			return nil
		}
		out = append(out, json.RawMessage(rec))
	}
	if err := rows.Err(); err != nil {
		s.log.Warn(ctx, "collection read failed, treating as empty", "name", name, "error", err)
		return nil
	}
	return out
}

func (s *SQLite) Save(ctx context.Context, name string, records []json.RawMessage) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM collections WHERE name = ?`, name); err != nil {
			return err
		}
		for i, rec := range records {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO collections (name, pos, record) VALUES (?, ?, ?)`,
				name, i, []byte(rec)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error(ctx, "collection save failed", "name", name, "error", err)
		return fmt.Errorf("%w: save %q: %v", common.ErrorPersistence, name, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
