// Package storage provides SQLite-based persistence for recorded replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a replay ID is not in the store.
var ErrNotFound = errors.New("storage: replay not found")

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.arcade/replays.db"

// Store manages the SQLite database connection for replays.
type Store struct {
	db *sql.DB
}

// Replay is one recorded session: everything needed to re-run it and the
// fingerprint the re-run must reproduce.
type Replay struct {
	ID          string
	GameID      string
	ConfigPath  string
	Preset      string
	Level       string
	Seed        int64
	TickRate    int
	Ticks       int
	Trace       []byte // encoded input frames
	Fingerprint uint64
	Score       int
	Phase       string
	CreatedAt   time.Time
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
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			config_path TEXT NOT NULL DEFAULT '',
			preset TEXT NOT NULL DEFAULT '',
			level TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			trace BLOB NOT NULL,
			fingerprint TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			phase TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
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

// SaveReplay stores r and returns its ID. A fresh UUID is assigned when
// r.ID is empty.
func (s *Store) SaveReplay(ctx context.Context, r Replay) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Trace == nil {
		r.Trace = []byte{}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO replays
		 (id, game_id, config_path, preset, level, seed, tick_rate, ticks, trace, fingerprint, score, phase, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.ConfigPath, r.Preset, r.Level,
		r.Seed, r.TickRate, r.Ticks, r.Trace,
		formatFingerprint(r.Fingerprint), r.Score, r.Phase,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return r.ID, nil
}

const replayColumns = `id, game_id, config_path, preset, level, seed, tick_rate, ticks,
	trace, fingerprint, score, phase, created_at`

// Replay retrieves one replay by ID.
func (s *Store) Replay(ctx context.Context, id string) (Replay, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+replayColumns+` FROM replays WHERE id = ?`, id)

	r, err := scanReplay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Replay{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Replay{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	return r, nil
}

// Replays lists replays newest first. An empty gameID lists every game;
// limit <= 0 means no limit.
func (s *Store) Replays(ctx context.Context, gameID string, limit int) ([]Replay, error) {
	query := `SELECT ` + replayColumns + ` FROM replays`
	var args []any
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// DeleteReplay removes one replay.
func (s *Store) DeleteReplay(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// GameStats contains aggregated replay statistics for a game.
type GameStats struct {
	GameID       string
	Replays      int
	BestScore    int
	TotalTicks   int64
	LastRecorded time.Time
}

// Stats aggregates replays per game, sorted by game ID.
func (s *Store) Stats(ctx context.Context) ([]GameStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, COUNT(*), MAX(score), SUM(ticks), MAX(created_at)
		 FROM replays
		 GROUP BY game_id
		 ORDER BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get replay stats: %w", err)
	}
	defer rows.Close()

	var out []GameStats
	for rows.Next() {
		var st GameStats
		var last any
		if err := rows.Scan(&st.GameID, &st.Replays, &st.BestScore, &st.TotalTicks, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRecorded = parseTime(last)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (Replay, error) {
	var r Replay
	var fingerprint string
	var createdAt any
	err := row.Scan(
		&r.ID, &r.GameID, &r.ConfigPath, &r.Preset, &r.Level,
		&r.Seed, &r.TickRate, &r.Ticks, &r.Trace,
		&fingerprint, &r.Score, &r.Phase, &createdAt,
	)
	if err != nil {
		return Replay{}, err
	}
	if r.Fingerprint, err = parseFingerprint(fingerprint); err != nil {
		return Replay{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

const timeLayout = "2006-01-02 15:04:05.000000"

// parseTime handles both driver-decoded times and stored strings.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// Fingerprints are stored as hex text: SQLite integers are signed.
func formatFingerprint(v uint64) string {
	return fmt.Sprintf("%016x", v)
}

func parseFingerprint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("bad fingerprint %q: %w", s, err)
	}
	return v, nil
}
