// Package storage provides SQLite-based persistence for simulation runs and
// engine tile states.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/bc-engines/internal/core"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is the summary of one simulation run.
type Run struct {
	ID         int64
	Kind       string
	Side       int
	Ticks      int
	Deploys    int
	Delivered  float64
	FinalStage string
	CreatedAt  time.Time
}

// TileState is the persisted state of a tile entity.
type TileState struct {
	Pos       core.BlockPos
	Kind      string
	Data      []byte
	UpdatedAt time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			side INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			deploys INTEGER NOT NULL DEFAULT 0,
			delivered REAL NOT NULL DEFAULT 0,
			final_stage TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(kind, delivered DESC);

		CREATE TABLE IF NOT EXISTS tile_states (
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			z INTEGER NOT NULL,
			kind TEXT NOT NULL,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (x, y, z)
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (kind, side, ticks, deploys, delivered, final_stage)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Kind, r.Side, r.Ticks, r.Deploys, r.Delivered, r.FinalStage,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty kind returns runs of every kind.
func (s *Store) RecentRuns(kind string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, kind, side, ticks, deploys, delivered, final_stage, created_at
		 FROM runs
		 WHERE ? = '' OR kind = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		kind, kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Kind, &r.Side, &r.Ticks, &r.Deploys, &r.Delivered, &r.FinalStage, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestDelivered returns the most energy delivered by a single run of a kind.
// Returns 0 if no runs exist.
func (s *Store) BestDelivered(kind string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(delivered) FROM runs WHERE kind = ?",
		kind,
	).Scan(&best)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best run: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return best.Float64, nil
}

// ClearRuns deletes all runs of a kind.
func (s *Store) ClearRuns(kind string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE kind = ?", kind)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SaveTileState stores the state of the tile at a position, replacing any
// previous state.
func (s *Store) SaveTileState(pos core.BlockPos, kind string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO tile_states (x, y, z, kind, data, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(x, y, z) DO UPDATE SET
		   kind = excluded.kind,
		   data = excluded.data,
		   updated_at = excluded.updated_at`,
		pos.X, pos.Y, pos.Z, kind, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save tile state at %v: %w", pos, err)
	}
	return nil
}

// TileStates returns every stored tile state ordered by position.
func (s *Store) TileStates() ([]TileState, error) {
	rows, err := s.db.Query(
		`SELECT x, y, z, kind, data, updated_at
		 FROM tile_states
		 ORDER BY x, y, z`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tile states: %w", err)
	}
	defer rows.Close()

	var states []TileState
	for rows.Next() {
		var ts TileState
		var updatedAt any
		if err := rows.Scan(&ts.Pos.X, &ts.Pos.Y, &ts.Pos.Z, &ts.Kind, &ts.Data, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ts.UpdatedAt = parseTime(updatedAt)
		states = append(states, ts)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return states, nil
}

// DeleteTileState removes the stored state at a position.
func (s *Store) DeleteTileState(pos core.BlockPos) error {
	_, err := s.db.Exec("DELETE FROM tile_states WHERE x = ? AND y = ? AND z = ?", pos.X, pos.Y, pos.Z)
	if err != nil {
		return fmt.Errorf("storage: cannot delete tile state at %v: %w", pos, err)
	}
	return nil
}

// ClearTileStates removes every stored tile state.
func (s *Store) ClearTileStates() error {
	if _, err := s.db.Exec("DELETE FROM tile_states"); err != nil {
		return fmt.Errorf("storage: cannot clear tile states: %w", err)
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
