// Package storage provides SQLite-based persistence for tilt recordings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Recording is the input log of one round: the spawn seed, the viewport it
// was played on, and one tilt value per sensor tick.
type Recording struct {
	ID          string
	Seed        int64
	ScreenW     float64 // Logical pixels
	ScreenH     float64
	Duration    time.Duration
	SampleCount int
	Tilts       []float64 // Only filled by Recording(id)
	CreatedAt   time.Time
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

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			screen_w REAL NOT NULL,
			screen_h REAL NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			sample_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS recording_samples (
			recording_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			tilt REAL NOT NULL,
			PRIMARY KEY (recording_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a recording and its samples in one transaction.
// An empty ID is replaced with a fresh UUID. Returns the ID used.
func (s *Store) SaveRecording(rec Recording) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // No-op after a successful commit
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO recordings (id, seed, screen_w, screen_h, duration_ms, sample_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.ScreenW, rec.ScreenH, rec.Duration.Milliseconds(), len(rec.Tilts),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save recording: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO recording_samples (recording_id, seq, tilt) VALUES (?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for i, tilt := range rec.Tilts {
		if _, err := stmt.Exec(rec.ID, i, tilt); err != nil {
			return "", fmt.Errorf("storage: cannot save sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit recording: %w", err)
	}
	return rec.ID, nil
}

// Recording loads one recording with all of its samples.
// Returns nil, nil if no recording has that ID.
func (s *Store) Recording(id string) (*Recording, error) {
	var rec Recording
	var durationMs int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, seed, screen_w, screen_h, duration_ms, sample_count, created_at
		 FROM recordings
		 WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Seed, &rec.ScreenW, &rec.ScreenH, &durationMs, &rec.SampleCount, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		"SELECT tilt FROM recording_samples WHERE recording_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	rec.Tilts = make([]float64, 0, rec.SampleCount)
	for rows.Next() {
		var tilt float64
		if err := rows.Scan(&tilt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan sample: %w", err)
		}
		rec.Tilts = append(rec.Tilts, tilt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// Recordings lists the most recent recordings, newest first, without
// their samples.
func (s *Store) Recordings(limit int) ([]Recording, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, screen_w, screen_h, duration_ms, sample_count, created_at
		 FROM recordings
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		var rec Recording
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.Seed, &rec.ScreenW, &rec.ScreenH, &durationMs, &rec.SampleCount, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.CreatedAt = parseTime(createdAt)
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return recs, nil
}

// DeleteRecording removes a recording and its samples.
// Deleting an unknown ID is not an error.
func (s *Store) DeleteRecording(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // No-op after a successful commit
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM recording_samples WHERE recording_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete samples: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM recordings WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
