package prefs

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS prefs (
    key TEXT PRIMARY KEY,
    int_value INTEGER,
    float_value REAL
);
`

// SQLite persists preferences in a single-table SQLite database.
type SQLite struct {
	values
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and loads every stored
// value into the cache.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure prefs table: %w", err)
	}

	s := &SQLite{values: newValues(), db: db}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) load() error {
	rows, err := s.db.Query(`SELECT key, int_value, float_value FROM prefs`)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key string
			i   sql.NullInt64
			f   sql.NullFloat64
		)
		if err := rows.Scan(&key, &i, &f); err != nil {
			return fmt.Errorf("scan pref: %w", err)
		}
		switch {
		case i.Valid:
			s.ints[key] = int(i.Int64)
		case f.Valid:
			s.floats[key] = f.Float64
		}
	}
	return rows.Err()
}

// Save writes every value changed since the last Save in one transaction.
func (s *SQLite) Save() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(s.dirty) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	const upsert = `INSERT INTO prefs (key, int_value, float_value) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET int_value = excluded.int_value, float_value = excluded.float_value`

	for key := range s.dirty {
		var iv, fv any
		if n, ok := s.ints[key]; ok {
			iv = n
		} else if f, ok := s.floats[key]; ok {
			fv = f
		} else {
			continue
		}
		if _, err := tx.Exec(upsert, key, iv, fv); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save pref %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.clean()
	return nil
}

// Close closes the SQLite handle without saving.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
