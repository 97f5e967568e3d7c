// Package store keeps key dictionaries in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/vigaff/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a named dictionary does not exist.
var ErrNotFound = errors.New("dictionary not found")

// Store wraps SQLite access for key dictionaries.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dictionaries (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS dictionary_keys (
			dictionary_id INTEGER NOT NULL,
			key TEXT NOT NULL,
			PRIMARY KEY (dictionary_id, key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_dictionary_keys_key ON dictionary_keys(key);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ImportDictionary stores keys under name, replacing any dictionary of the
// same name in one transaction.
func (s *Store) ImportDictionary(ctx context.Context, name, source string, keys []string) (id int64, err error) {
	if name == "" {
		return 0, fmt.Errorf("dictionary name is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM dictionary_keys WHERE dictionary_id IN (SELECT id FROM dictionaries WHERE name = ?)`, name); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM dictionaries WHERE name = ?`, name); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO dictionaries (name, source, created_at) VALUES (?, ?, ?)`,
		name, source, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(keys) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT OR IGNORE INTO dictionary_keys (dictionary_id, key) VALUES (?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, key := range keys {
			if _, err = stmt.ExecContext(ctx, id, key); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListDictionaries returns every dictionary with its key count, by name.
func (s *Store) ListDictionaries(ctx context.Context) ([]model.Dictionary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT d.id, d.name, d.source, d.created_at, COUNT(k.key)
		FROM dictionaries d
		LEFT JOIN dictionary_keys k ON k.dictionary_id = d.id
		GROUP BY d.id
		ORDER BY d.name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Dictionary
	for rows.Next() {
		var d model.Dictionary
		var createdAt string
		if err := rows.Scan(&d.ID, &d.Name, &d.Source, &createdAt, &d.Keys); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		d.CreatedAt = parsed
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Keys returns the keys of a dictionary in insertion order. maxLen > 0 skips
// longer keys.
func (s *Store) Keys(ctx context.Context, name string, maxLen int) ([]string, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM dictionaries WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM dictionary_keys
		WHERE dictionary_id = ? AND (? <= 0 OR length(key) <= ?)
		ORDER BY rowid ASC`, id, maxLen, maxLen)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// DeleteDictionary removes a dictionary and its keys.
func (s *Store) DeleteDictionary(ctx context.Context, name string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM dictionary_keys WHERE dictionary_id IN (SELECT id FROM dictionaries WHERE name = ?)`, name); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM dictionaries WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = fmt.Errorf("%w: %s", ErrNotFound, name)
		return err
	}
	return tx.Commit()
}
