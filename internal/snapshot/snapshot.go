// Package snapshot persists application state between runs. Each saved
// snapshot is one row holding the serialized composite state; the newest
// row seeds the store on the next start.
package snapshot

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNoSnapshot is returned by Latest when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Store persists state snapshots in sqlite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database at path and applies
// pending migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate snapshot db: %w", err)
	}
	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

// Save stores payload as a new snapshot and returns its id.
func (s *Store) Save(ctx context.Context, payload []byte) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at, state) VALUES (?, ?, ?)`,
		id, createdAt, string(payload))
	if err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return id, nil
}

// Latest returns the most recently saved payload.
func (s *Store) Latest(ctx context.Context) ([]byte, error) {
	var state string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	return []byte(state), nil
}

// Prune deletes all but the keep most recent snapshots.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE rowid NOT IN (
			SELECT rowid FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
