package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteRunStore implements RunStore on SQLite.
type SQLiteRunStore struct {
	db *sql.DB
}

// NewSQLiteRunStore opens (creating if needed) the database at path.
// ":memory:" opens a private in-memory database.
func NewSQLiteRunStore(path string) (*SQLiteRunStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every pooled connection to ":memory:" would get its own database.
	db.SetMaxOpenConns(1)

	s := &SQLiteRunStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteRunStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		project_name TEXT NOT NULL,
		status TEXT NOT NULL,            -- done, failed
		failed_stage TEXT,
		error TEXT,
		provider TEXT,
		model TEXT,
		definition TEXT,                 -- request JSON
		artifact TEXT,                   -- artifact JSON, NULL when failed
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record implements RunStore.
func (s *SQLiteRunStore) Record(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(id, project_name, status, failed_stage, error, provider, model, definition, artifact, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.ProjectName, string(run.Status), nullString(run.FailedStage), nullString(run.Error),
		nullString(run.Provider), nullString(run.Model), nullString(string(run.Definition)), nullString(string(run.Artifact)),
		run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Get implements RunStore.
func (s *SQLiteRunStore) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project_name, status, failed_stage, error, provider, model, definition, artifact, started_at, finished_at
		FROM runs WHERE id = ?
	`, id)

	var run Run
	var status, startedAt, finishedAt string
	var failedStage, errMsg, provider, model, definition, artifact sql.NullString
	err := row.Scan(&run.ID, &run.ProjectName, &status, &failedStage, &errMsg, &provider, &model,
		&definition, &artifact, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}

	populateRun(&run, status, failedStage, errMsg, provider, model, startedAt, finishedAt)
	if definition.Valid {
		run.Definition = []byte(definition.String)
	}
	if artifact.Valid {
		run.Artifact = []byte(artifact.String)
	}
	return run, nil
}

// List implements RunStore.
func (s *SQLiteRunStore) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, project_name, status, failed_stage, error, provider, model, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var status, startedAt, finishedAt string
		var failedStage, errMsg, provider, model sql.NullString
		if err := rows.Scan(&run.ID, &run.ProjectName, &status, &failedStage, &errMsg, &provider, &model,
			&startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		populateRun(&run, status, failedStage, errMsg, provider, model, startedAt, finishedAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Close implements RunStore.
func (s *SQLiteRunStore) Close() error {
	return s.db.Close()
}

func populateRun(run *Run, status string, failedStage, errMsg, provider, model sql.NullString, startedAt, finishedAt string) {
	run.Status = RunStatus(status)
	run.FailedStage = failedStage.String
	run.Error = errMsg.String
	run.Provider = provider.String
	run.Model = model.String
	run.StartedAt, _ = time.Parse(timeLayout, startedAt)
	run.FinishedAt, _ = time.Parse(timeLayout, finishedAt)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
