// Package storage persists campaign progress and level completions in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const keyLastLevel = "last_level"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Completion is one won level attempt.
type Completion struct {
	ID        int64
	RunID     string // groups the completions of one play session
	Level     string
	Ticks     int
	BombsUsed int
	CreatedAt time.Time
}

// LevelStats aggregates the completions of one level.
type LevelStats struct {
	Level       string
	Wins        int
	BestTicks   int
	FewestBombs int
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetLastLevel remembers the level the player last entered.
func (s *Store) SetLastLevel(level string) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		keyLastLevel, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// LastLevel returns the last level entered, or "" for a fresh campaign.
func (s *Store) LastLevel() (string, error) {
	var level string
	err := s.db.QueryRow("SELECT value FROM progress WHERE key = ?", keyLastLevel).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return level, nil
}

// ResetProgress forgets the last level. Completions are kept.
func (s *Store) ResetProgress() error {
	if _, err := s.db.Exec("DELETE FROM progress"); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// RecordCompletion stores a won level and returns the new record ID.
func (s *Store) RecordCompletion(c Completion) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (run_id, level, ticks, bombs_used) VALUES (?, ?, ?, ?)",
		c.RunID, c.Level, c.Ticks, c.BombsUsed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestCompletion returns the fastest completion of a level, or nil if the
// level was never won.
func (s *Store) BestCompletion(level string) (*Completion, error) {
	var c Completion
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, run_id, level, ticks, bombs_used, created_at
		 FROM completions
		 WHERE level = ?
		 ORDER BY ticks ASC, bombs_used ASC, id ASC
		 LIMIT 1`,
		level,
	).Scan(&c.ID, &c.RunID, &c.Level, &c.Ticks, &c.BombsUsed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completion: %w", err)
	}
	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}

// Completions lists the completions of a level, fastest first.
// An empty level lists every level.
func (s *Store) Completions(level string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, level, ticks, bombs_used, created_at
		 FROM completions
		 WHERE ? = '' OR level = ?
		 ORDER BY level ASC, ticks ASC, id ASC
		 LIMIT ?`,
		level, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		var c Completion
		var createdAt any
		if err := rows.Scan(&c.ID, &c.RunID, &c.Level, &c.Ticks, &c.BombsUsed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		entries = append(entries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Stats returns per-level aggregates for every level that was won.
func (s *Store) Stats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MIN(ticks), MIN(bombs_used), MAX(created_at)
		 FROM completions
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.Level, &st.Wins, &st.BestTicks, &st.FewestBombs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Level] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
