package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns
// a Store. Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// WAL mode so sailtool can read history while a run is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run *Run) error {
	s.logger.Debug("sql", "op", "insert", "table", "runs", "id", run.ID)

	configJSON, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, config, zones, iterations, final_time, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, string(configJSON), run.Zones, run.Iterations, run.FinalTime,
		run.StartedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) FinishRun(ctx context.Context, id string, iterations int, finalTime float64) error {
	s.logger.Debug("sql", "op", "update", "table", "runs", "id", id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET iterations = ?, final_time = ?, finished_at = ? WHERE id = ?`,
		iterations, finalTime, time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, config, zones, iterations, final_time, started_at, finished_at
		 FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]*Run, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs")

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, config, zones, iterations, final_time, started_at, finished_at
		 FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) AddCheckpoint(ctx context.Context, rec *CheckpointRecord) error {
	s.logger.Debug("sql", "op", "insert", "table", "checkpoints",
		"run_id", rec.RunID, "number", rec.Number)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checkpoints (run_id, number, iteration, time, path, size_bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Number, rec.Iteration, rec.Time, rec.Path, rec.SizeBytes,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) ListCheckpoints(ctx context.Context, runID string) ([]*CheckpointRecord, error) {
	s.logger.Debug("sql", "op", "select", "table", "checkpoints", "run_id", runID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, number, iteration, time, path, size_bytes, created_at
		 FROM checkpoints WHERE run_id = ? ORDER BY number`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*CheckpointRecord
	for rows.Next() {
		var rec CheckpointRecord
		var createdAt string
		if err := rows.Scan(&rec.RunID, &rec.Number, &rec.Iteration, &rec.Time,
			&rec.Path, &rec.SizeBytes, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var configJSON, startedAt string
	var finishedAt sql.NullString

	if err := row.Scan(&run.ID, &configJSON, &run.Zones, &run.Iterations,
		&run.FinalTime, &startedAt, &finishedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(configJSON), &run.Config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
	if finishedAt.Valid {
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt.String)
	}
	return &run, nil
}
