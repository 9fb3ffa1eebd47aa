// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// historyLimit bounds the session history to the most recent records.
const historyLimit = 30

// Store wraps SQLite access for session history.
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
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_s INTEGER NOT NULL,
			score INTEGER NOT NULL,
			reps INTEGER NOT NULL,
			best_hold_ms INTEGER NOT NULL,
			caught INTEGER NOT NULL,
			missed INTEGER NOT NULL,
			max_combo INTEGER NOT NULL,
			source TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and prunes the history to the
// most recent records. Returns the assigned session id.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, ended_at, duration_s, score, reps, best_hold_ms, caught, missed, max_combo, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
		rec.DurationSeconds,
		rec.Score,
		rec.Reps,
		rec.BestHoldMs,
		rec.Caught,
		rec.Missed,
		rec.MaxCombo,
		rec.Source,
	)
	if err != nil {
		return "", err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM sessions WHERE id NOT IN (
			SELECT id FROM sessions ORDER BY ended_at DESC, id DESC LIMIT ?
		)`, historyLimit)
	if err != nil {
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListSessions returns the stored history filtered by stats config, ordered
// by end time ascending.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, duration_s, score, reps, best_hold_ms, caught, missed, max_combo, source
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var startedAt, endedAt string
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &rec.DurationSeconds, &rec.Score, &rec.Reps, &rec.BestHoldMs, &rec.Caught, &rec.Missed, &rec.MaxCombo, &rec.Source); err != nil {
			return nil, err
		}
		rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
