package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS progress (
	item_id         TEXT PRIMARY KEY,
	status          TEXT NOT NULL DEFAULT 'unlearned',
	retry_count     INTEGER NOT NULL DEFAULT 0,
	correct_count   INTEGER NOT NULL DEFAULT 0,
	incorrect_count INTEGER NOT NULL DEFAULT 0,
	time_spent_ms   INTEGER NOT NULL DEFAULT 0,
	first_accessed  INTEGER,
	last_accessed   INTEGER
);`

// SQLiteRepo is a Repo backed by a local SQLite file.
type SQLiteRepo struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to the SQLite database at dsn, applies pragmas, and
// creates the schema if needed.
func Open(dsn string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteRepo{db: db, now: time.Now}, nil
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. STEPMATH_DB environment variable
// 2. $XDG_DATA_HOME/stepmath/stepmath.db
// 3. ~/.local/share/stepmath/stepmath.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STEPMATH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "stepmath", "stepmath.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// SetClock replaces the wall clock, for tests.
func (r *SQLiteRepo) SetClock(now func() time.Time) { r.now = now }

func (r *SQLiteRepo) Close() error { return r.db.Close() }

func (r *SQLiteRepo) Get(ctx context.Context, itemID string) (Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT item_id, status, retry_count, correct_count, incorrect_count,
		        time_spent_ms, first_accessed, last_accessed
		 FROM progress WHERE item_id = ?`, itemID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return NewRecord(itemID), nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("query progress: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepo) All(ctx context.Context) (map[string]Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, status, retry_count, correct_count, incorrect_count,
		        time_spent_ms, first_accessed, last_accessed
		 FROM progress`)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Record)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out[rec.ItemID] = rec
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) RecordAccess(ctx context.Context, itemID string) error {
	return r.update(ctx, itemID, func(rec *Record) { rec.applyAccess(r.now()) })
}

func (r *SQLiteRepo) RecordAnswer(ctx context.Context, itemID string, correct bool) error {
	return r.update(ctx, itemID, func(rec *Record) { rec.applyAnswer(correct) })
}

func (r *SQLiteRepo) RecordRetry(ctx context.Context, itemID string) error {
	return r.update(ctx, itemID, func(rec *Record) { rec.applyRetry() })
}

func (r *SQLiteRepo) Reset(ctx context.Context, itemID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM progress WHERE item_id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) ResetAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress`); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// update applies fn to the stored record inside a transaction.
func (r *SQLiteRepo) update(ctx context.Context, itemID string, fn func(*Record)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT item_id, status, retry_count, correct_count, incorrect_count,
		        time_spent_ms, first_accessed, last_accessed
		 FROM progress WHERE item_id = ?`, itemID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		rec = NewRecord(itemID)
	} else if err != nil {
		return fmt.Errorf("query progress: %w", err)
	}

	fn(&rec)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO progress
		   (item_id, status, retry_count, correct_count, incorrect_count,
		    time_spent_ms, first_accessed, last_accessed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(item_id) DO UPDATE SET
		   status = excluded.status,
		   retry_count = excluded.retry_count,
		   correct_count = excluded.correct_count,
		   incorrect_count = excluded.incorrect_count,
		   time_spent_ms = excluded.time_spent_ms,
		   first_accessed = excluded.first_accessed,
		   last_accessed = excluded.last_accessed`,
		rec.ItemID, string(rec.Status), rec.RetryCount, rec.CorrectCount,
		rec.IncorrectCount, rec.TimeSpent.Milliseconds(),
		unixOrNil(rec.FirstAccessed), unixOrNil(rec.LastAccessed))
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec     Record
		status  string
		ms      int64
		firstAt sql.NullInt64
		lastAt  sql.NullInt64
	)
	err := row.Scan(&rec.ItemID, &status, &rec.RetryCount, &rec.CorrectCount,
		&rec.IncorrectCount, &ms, &firstAt, &lastAt)
	if err != nil {
		return Record{}, err
	}
	rec.Status = Status(status)
	rec.TimeSpent = time.Duration(ms) * time.Millisecond
	if firstAt.Valid {
		rec.FirstAccessed = time.UnixMilli(firstAt.Int64)
	}
	if lastAt.Valid {
		rec.LastAccessed = time.UnixMilli(lastAt.Int64)
	}
	return rec, nil
}

func unixOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}
