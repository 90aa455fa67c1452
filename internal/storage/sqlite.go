// Package storage provides SQLite-based persistence for solver run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only run metrics are stored. Solutions are never persisted; export them
// with the report package instead.
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

// Run statuses.
const (
	StatusSolved     = "solved"
	StatusNoSolution = "no_solution"
	StatusError      = "error"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded solver invocation.
type Run struct {
	ID          int64
	BoardID     string
	Strategy    string
	Status      string
	Placements  int // number of blocks placed, 0 unless solved
	Nodes       int64
	Evaluations int64
	Pruned      int64
	Workers     int
	Duration    time.Duration
	Error       string // Empty unless Status is StatusError
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			board_id TEXT NOT NULL,
			strategy TEXT NOT NULL,
			status TEXT NOT NULL,
			placements INTEGER NOT NULL DEFAULT 0,
			nodes INTEGER NOT NULL DEFAULT 0,
			evaluations INTEGER NOT NULL DEFAULT 0,
			pruned INTEGER NOT NULL DEFAULT 0,
			workers INTEGER NOT NULL DEFAULT 1,
			duration_us INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_board_id ON runs(board_id);
		CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(board_id, status);
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

// SaveRun records a solver run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	var errText sql.NullString
	if r.Error != "" {
		errText = sql.NullString{String: r.Error, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (board_id, strategy, status, placements, nodes, evaluations, pruned, workers, duration_us, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.BoardID, r.Strategy, r.Status, r.Placements,
		r.Nodes, r.Evaluations, r.Pruned, r.Workers,
		r.Duration.Microseconds(), errText,
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

const runColumns = `id, board_id, strategy, status, placements, nodes, evaluations,
	pruned, workers, duration_us, error, created_at`

// RecentRuns retrieves the most recent runs across all boards, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// RunsForBoard retrieves the most recent runs of one board, newest first.
func (s *Store) RunsForBoard(boardID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE board_id = ? ORDER BY id DESC LIMIT ?`,
		boardID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			durationUS int64
			errText    sql.NullString
			createdAt  any
		)
		if err := rows.Scan(
			&r.ID, &r.BoardID, &r.Strategy, &r.Status, &r.Placements,
			&r.Nodes, &r.Evaluations, &r.Pruned, &r.Workers,
			&durationUS, &errText, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationUS) * time.Microsecond
		r.Error = errText.String
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes all runs for the given board, or every run when
// boardID is empty.
func (s *Store) ClearRuns(boardID string) error {
	var err error
	if boardID == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE board_id = ?", boardID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// BoardStats contains aggregated statistics for a board.
type BoardStats struct {
	BoardID     string
	Runs        int
	Solved      int
	FewestNodes int64 // among solved runs, 0 if none
	AvgDuration time.Duration
	LastRun     time.Time
}

// GetBoardStats retrieves aggregated statistics for a specific board.
func (s *Store) GetBoardStats(boardID string) (*BoardStats, error) {
	stats := &BoardStats{BoardID: boardID}

	var avgUS float64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN status = ? THEN nodes END), 0),
		        COALESCE(AVG(duration_us), 0)
		 FROM runs WHERE board_id = ?`,
		StatusSolved, StatusSolved, boardID,
	).Scan(&stats.Runs, &stats.Solved, &stats.FewestNodes, &avgUS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get board stats: %w", err)
	}
	stats.AvgDuration = time.Duration(avgUS) * time.Microsecond

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE board_id = ? ORDER BY id DESC LIMIT 1`,
		boardID,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// GetAllBoardStats retrieves statistics for every board that has runs.
func (s *Store) GetAllBoardStats() (map[string]*BoardStats, error) {
	rows, err := s.db.Query(
		`SELECT board_id, COUNT(*),
		        SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN status = ? THEN nodes END), 0),
		        AVG(duration_us), MAX(created_at)
		 FROM runs
		 GROUP BY board_id`,
		StatusSolved, StatusSolved,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all board stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*BoardStats)
	for rows.Next() {
		var (
			bs      BoardStats
			avgUS   float64
			lastRun any
		)
		if err := rows.Scan(&bs.BoardID, &bs.Runs, &bs.Solved, &bs.FewestNodes, &avgUS, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		bs.AvgDuration = time.Duration(avgUS) * time.Microsecond
		bs.LastRun = parseTime(lastRun)
		stats[bs.BoardID] = &bs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
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
