package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/tally/internal/tasklist"
)

// SQLiteStore keeps the same storage lines as FileStore, one row per task,
// ordered by position.
type SQLiteStore struct {
	db     *sql.DB
	target string
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(db); err != nil {
		return nil, &PersistenceError{Op: "migrate", Target: "sqlite", Err: err}
	}
	return &SQLiteStore{db: db, target: "sqlite"}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &PersistenceError{Op: "create directory", Target: dir, Err: err}
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Target: path, Err: err}
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.target = path
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (DecodeResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT line FROM task_lines ORDER BY position ASC`)
	if err != nil {
		return DecodeResult{}, &PersistenceError{Op: "read", Target: s.target, Err: err}
	}
	defer rows.Close()

	lines := make([]string, 0)
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return DecodeResult{}, &PersistenceError{Op: "read", Target: s.target, Err: err}
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return DecodeResult{}, &PersistenceError{Op: "read", Target: s.target, Err: err}
	}
	return Decode(lines), nil
}

// Save replaces every row inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap tasklist.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "write", Target: s.target, Err: err}
	}
	if err := replaceLines(ctx, tx, Encode(snap)); err != nil {
		_ = tx.Rollback()
		return &PersistenceError{Op: "write", Target: s.target, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit", Target: s.target, Err: err}
	}
	return nil
}

func replaceLines(ctx context.Context, tx *sql.Tx, lines []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_lines`); err != nil {
		return fmt.Errorf("clear task lines: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO task_lines (position, line) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, line := range lines {
		if _, err := stmt.ExecContext(ctx, i, line); err != nil {
			return fmt.Errorf("insert line %d: %w", i+1, err)
		}
	}
	return nil
}
