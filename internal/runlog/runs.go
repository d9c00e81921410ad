package runlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Status describes how a run ended.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Kind distinguishes organize runs from undo runs in the shared history.
type Kind string

const (
	KindOrganize Kind = "organize"
	KindUndo     Kind = "undo"
)

// Run is one recorded invocation. For undo runs Moved counts operations
// reversed and Errors counts operations that could not be.
type Run struct {
	ID            int64
	Kind          Kind
	SourceDir     string
	DryRun        bool
	Processed     int
	Moved         int
	Errors        int
	TransactionID string
	Status        Status
	ErrorMessage  string
	StartedAt     time.Time
	FinishedAt    time.Time
}

const runColumns = "id, kind, source_dir, dry_run, processed, moved, errors, transaction_id, status, error_message, started_at, finished_at"

// Record inserts a finished run and fills in its assigned id.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("nil run")
	}
	if run.Kind == "" {
		run.Kind = KindOrganize
	}
	if run.Status == "" {
		run.Status = StatusCompleted
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	res, err := s.execWithRetry(ctx,
		`INSERT INTO runs (kind, source_dir, dry_run, processed, moved, errors, transaction_id, status, error_message, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(run.Kind),
		run.SourceDir,
		boolToInt(run.DryRun),
		run.Processed,
		run.Moved,
		run.Errors,
		nullableString(run.TransactionID),
		string(run.Status),
		nullableString(run.ErrorMessage),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read run id: %w", err)
	}
	run.ID = id
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
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

// LastRun returns the most recent run, or nil when the history is empty.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY id DESC LIMIT 1")
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read last run: %w", err)
	}
	return run, nil
}

// Stats aggregates the whole run history.
type Stats struct {
	TotalRuns   int64
	TotalMoved  int64
	TotalErrors int64
}

// Totals sums counters across recorded organize runs. Undo runs are left out
// so reversed moves do not inflate the moved total.
func (s *Store) Totals(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1), COALESCE(SUM(moved), 0), COALESCE(SUM(errors), 0) FROM runs WHERE kind = ?",
		string(KindOrganize),
	).Scan(&stats.TotalRuns, &stats.TotalMoved, &stats.TotalErrors)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate runs: %w", err)
	}
	return stats, nil
}

// Clear deletes the entire run history.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.execWithRetry(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id            int64
		kindStr       sql.NullString
		sourceDir     sql.NullString
		dryRun        sql.NullInt64
		processed     sql.NullInt64
		moved         sql.NullInt64
		errorCount    sql.NullInt64
		transactionID sql.NullString
		statusStr     string
		errorMessage  sql.NullString
		startedRaw    sql.NullString
		finishedRaw   sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&kindStr,
		&sourceDir,
		&dryRun,
		&processed,
		&moved,
		&errorCount,
		&transactionID,
		&statusStr,
		&errorMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:            id,
		Kind:          Kind(kindStr.String),
		SourceDir:     sourceDir.String,
		DryRun:        dryRun.Int64 != 0,
		Processed:     int(processed.Int64),
		Moved:         int(moved.Int64),
		Errors:        int(errorCount.Int64),
		TransactionID: transactionID.String,
		Status:        Status(statusStr),
		ErrorMessage:  errorMessage.String,
	}
	if started, err := parseTimeString(startedRaw.String); err == nil {
		run.StartedAt = started
	}
	if finished, err := parseTimeString(finishedRaw.String); err == nil {
		run.FinishedAt = finished
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
