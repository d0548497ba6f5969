package resultstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// RunRegistry records one row per backtest run: when it started/finished,
// which strategy it used, and a summary good enough to list runs without
// opening their Parquet archives.
type RunRegistry struct {
	db *sql.DB
}

// OpenRunRegistry opens (creating if necessary) the SQLite database at
// dbPath and ensures the runs table exists.
func OpenRunRegistry(dbPath string) (*RunRegistry, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening run registry: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging run registry: %w", err)
	}

	r := &RunRegistry{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *RunRegistry) migrate() error {
	_, err := r.db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
	run_id            TEXT PRIMARY KEY,
	strategy_name     TEXT NOT NULL,
	started_at        INTEGER NOT NULL,
	finished_at       INTEGER,
	total_days        INTEGER NOT NULL DEFAULT 0,
	total_trades      INTEGER NOT NULL DEFAULT 0,
	total_return_pct  REAL NOT NULL DEFAULT 0,
	status            TEXT NOT NULL DEFAULT 'running'
)`)
	return err
}

// Close closes the underlying database connection.
func (r *RunRegistry) Close() error {
	return r.db.Close()
}

// RunRecord is one row of the runs table.
type RunRecord struct {
	RunID          string
	StrategyName   string
	StartedAt      int64
	FinishedAt     *int64
	TotalDays      int
	TotalTrades    int
	TotalReturnPct float64
	Status         string
}

// BeginRun inserts a new row with status "running" and a freshly generated
// run ID, returning the ID so the caller can later call FinishRun with it.
func (r *RunRegistry) BeginRun(strategyName string) (string, error) {
	runID := uuid.NewString()
	_, err := r.db.Exec(
		`INSERT INTO runs (run_id, strategy_name, started_at, status) VALUES (?, ?, ?, 'running')`,
		runID, strategyName, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("beginning run: %w", err)
	}
	return runID, nil
}

// FinishRun records a completed run's summary metrics.
func (r *RunRegistry) FinishRun(runID string, totalDays, totalTrades int, totalReturnPct float64) error {
	_, err := r.db.Exec(
		`UPDATE runs SET finished_at = ?, total_days = ?, total_trades = ?, total_return_pct = ?, status = 'complete' WHERE run_id = ?`,
		time.Now().Unix(), totalDays, totalTrades, totalReturnPct, runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", runID, err)
	}
	return nil
}

// FailRun marks a run as failed instead of complete.
func (r *RunRegistry) FailRun(runID string) error {
	_, err := r.db.Exec(
		`UPDATE runs SET finished_at = ?, status = 'failed' WHERE run_id = ?`,
		time.Now().Unix(), runID,
	)
	return err
}

// Get fetches one run by ID.
func (r *RunRegistry) Get(runID string) (RunRecord, error) {
	var rec RunRecord
	var finishedAt sql.NullInt64
	err := r.db.QueryRow(
		`SELECT run_id, strategy_name, started_at, finished_at, total_days, total_trades, total_return_pct, status FROM runs WHERE run_id = ?`,
		runID,
	).Scan(&rec.RunID, &rec.StrategyName, &rec.StartedAt, &finishedAt, &rec.TotalDays, &rec.TotalTrades, &rec.TotalReturnPct, &rec.Status)
	if err != nil {
		return RunRecord{}, fmt.Errorf("fetching run %s: %w", runID, err)
	}
	if finishedAt.Valid {
		rec.FinishedAt = &finishedAt.Int64
	}
	return rec, nil
}

// List returns every run, most recently started first.
func (r *RunRegistry) List() ([]RunRecord, error) {
	rows, err := r.db.Query(
		`SELECT run_id, strategy_name, started_at, finished_at, total_days, total_trades, total_return_pct, status FROM runs ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var finishedAt sql.NullInt64
		if err := rows.Scan(&rec.RunID, &rec.StrategyName, &rec.StartedAt, &finishedAt, &rec.TotalDays, &rec.TotalTrades, &rec.TotalReturnPct, &rec.Status); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			rec.FinishedAt = &finishedAt.Int64
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
