// Package sqlite provides storage areas persisted in a SQLite database.
// Several named areas can share one database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"browserstore/internal/kv"
	"browserstore/internal/kv/sqlite/migrations"
)

const opTimeout = 5 * time.Second

// DB is an open SQLite storage database.
type DB struct {
	sqlDB *sql.DB
}

// Open opens and migrates the database at path.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &DB{sqlDB: sqlDB}, nil
}

// Close releases the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.sqlDB == nil {
		return nil
	}
	return d.sqlDB.Close()
}

// Area returns the storage area called name.
func (d *DB) Area(name string) *Area {
	return &Area{db: d, name: name}
}

// Area is one named storage area inside a DB.
type Area struct {
	db   *DB
	name string
}

func (a *Area) GetItem(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var text string
	err := a.db.sqlDB.QueryRowContext(ctx,
		`SELECT item_value FROM storage_items WHERE area = ? AND item_key = ?`,
		a.name, key,
	).Scan(&text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get item: %w", err)
	}
	return text, true, nil
}

func (a *Area) SetItem(key, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := a.db.sqlDB.ExecContext(ctx,
		`INSERT INTO storage_items (area, item_key, item_value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(area, item_key) DO UPDATE SET
		    item_value = excluded.item_value,
		    updated_at = excluded.updated_at`,
		a.name, key, text, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("set item: %w", err)
	}
	return nil
}

func (a *Area) RemoveItem(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := a.db.sqlDB.ExecContext(ctx,
		`DELETE FROM storage_items WHERE area = ? AND item_key = ?`,
		a.name, key,
	); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return nil
}

// Clear removes every item of the area.
func (a *Area) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := a.db.sqlDB.ExecContext(ctx, `DELETE FROM storage_items WHERE area = ?`, a.name); err != nil {
		return fmt.Errorf("clear area: %w", err)
	}
	return nil
}

var (
	_ kv.Area    = (*Area)(nil)
	_ kv.Clearer = (*Area)(nil)
)
