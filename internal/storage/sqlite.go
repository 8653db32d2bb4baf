// Package storage provides SQLite-based persistence for game session history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is how timestamps are written; SQLite has no native time type.
const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one finished game.
type Session struct {
	ID          int64
	User        string // "local" for terminal play, the SSH user otherwise
	StartedAt   time.Time
	Duration    time.Duration
	Frames      uint64
	LeftHits    int
	RightHits   int
	WallBounces int
	SelfPlay    bool // self-play flag when the game ended
	EndReason   string
}

// SessionEvent is one collision recorded during a session.
type SessionEvent struct {
	ID        int64
	SessionID int64
	Frame     uint64
	Kind      string // event code: "left", "right" or "wall"
	BallX     float64
	BallY     float64
	At        time.Time
}

// Stats aggregates every recorded session.
type Stats struct {
	Sessions      int
	TotalFrames   int64
	TotalHits     int64
	LongestFrames int64
	LastPlayed    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user TEXT NOT NULL,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			left_hits INTEGER NOT NULL DEFAULT 0,
			right_hits INTEGER NOT NULL DEFAULT 0,
			wall_bounces INTEGER NOT NULL DEFAULT 0,
			self_play INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS session_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			frame INTEGER NOT NULL,
			kind TEXT NOT NULL,
			ball_x REAL NOT NULL,
			ball_y REAL NOT NULL,
			at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events(session_id, frame);
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

// SaveSession records a session and its events in one transaction.
// Returns the ID of the inserted session.
func (s *Store) SaveSession(sess Session, events []SessionEvent) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO sessions
		 (user, started_at, duration_ms, frames, left_hits, right_hits, wall_bounces, self_play, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.User,
		formatTime(sess.StartedAt),
		sess.Duration.Milliseconds(),
		int64(sess.Frames),
		sess.LeftHits,
		sess.RightHits,
		sess.WallBounces,
		sess.SelfPlay,
		sess.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if len(events) > 0 {
		stmt, err := tx.Prepare(
			`INSERT INTO session_events (session_id, frame, kind, ball_x, ball_y, at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot prepare event insert: %w", err)
		}
		defer stmt.Close()

		for _, ev := range events {
			if _, err := stmt.Exec(id, int64(ev.Frame), ev.Kind, ev.BallX, ev.BallY, formatTime(ev.At)); err != nil {
				return 0, fmt.Errorf("storage: cannot save event: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, user, started_at, duration_ms, frames, left_hits, right_hits,
		        wall_bounces, self_play, end_reason
		 FROM sessions
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var startedAt any
		var durationMS, frames int64
		if err := rows.Scan(
			&sess.ID,
			&sess.User,
			&startedAt,
			&durationMS,
			&frames,
			&sess.LeftHits,
			&sess.RightHits,
			&sess.WallBounces,
			&sess.SelfPlay,
			&sess.EndReason,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.StartedAt = parseTime(startedAt)
		sess.Duration = time.Duration(durationMS) * time.Millisecond
		sess.Frames = uint64(frames)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// SessionByID retrieves one session. Returns nil if it does not exist.
func (s *Store) SessionByID(id int64) (*Session, error) {
	var sess Session
	var startedAt any
	var durationMS, frames int64

	err := s.db.QueryRow(
		`SELECT id, user, started_at, duration_ms, frames, left_hits, right_hits,
		        wall_bounces, self_play, end_reason
		 FROM sessions
		 WHERE id = ?`,
		id,
	).Scan(
		&sess.ID,
		&sess.User,
		&startedAt,
		&durationMS,
		&frames,
		&sess.LeftHits,
		&sess.RightHits,
		&sess.WallBounces,
		&sess.SelfPlay,
		&sess.EndReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	sess.StartedAt = parseTime(startedAt)
	sess.Duration = time.Duration(durationMS) * time.Millisecond
	sess.Frames = uint64(frames)
	return &sess, nil
}

// SessionEvents retrieves the events of a session in frame order.
func (s *Store) SessionEvents(sessionID int64) ([]SessionEvent, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, frame, kind, ball_x, ball_y, at
		 FROM session_events
		 WHERE session_id = ?
		 ORDER BY frame, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var ev SessionEvent
		var frame int64
		var at any
		if err := rows.Scan(&ev.ID, &ev.SessionID, &frame, &ev.Kind, &ev.BallX, &ev.BallY, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ev.Frame = uint64(frame)
		ev.At = parseTime(at)
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return events, nil
}

// ClearHistory deletes every session and event.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM session_events; DELETE FROM sessions;"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// GetStats aggregates all recorded sessions.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(frames), 0),
		        COALESCE(SUM(left_hits + right_hits), 0),
		        COALESCE(MAX(frames), 0), MAX(started_at)
		 FROM sessions`,
	).Scan(&stats.Sessions, &stats.TotalFrames, &stats.TotalHits, &stats.LongestFrames, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime handles both driver-parsed times and raw strings.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(v)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
