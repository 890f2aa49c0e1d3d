package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"benchgate/domain/core"
	"benchgate/domain/findings"
	"benchgate/domain/run"
	"benchgate/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS validation_runs (
	id              TEXT PRIMARY KEY,
	input_file      TEXT NOT NULL,
	status          TEXT NOT NULL,
	passed          BOOLEAN NOT NULL,
	total_errors    INTEGER NOT NULL,
	total_warnings  INTEGER NOT NULL,
	rows_processed  INTEGER NOT NULL,
	report          JSONB NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
)`

// runLedger implements ports.RunLedger on Postgres
type runLedger struct {
	db *sqlx.DB
}

// NewRunLedger creates a run ledger backed by the given database,
// ensuring the backing table exists.
func NewRunLedger(db *sqlx.DB) (ports.RunLedger, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure validation_runs table: %w", err)
	}
	return &runLedger{db: db}, nil
}

// RecordRun inserts a finished run into the ledger
func (l *runLedger) RecordRun(ctx context.Context, record run.Record) error {
	reportJSON, err := json.Marshal(record.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `INSERT INTO validation_runs (
		id, input_file, status, passed, total_errors, total_warnings,
		rows_processed, report, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = l.db.ExecContext(ctx, query,
		record.ID, record.InputFile, record.Status, record.Passed,
		record.TotalErrors, record.TotalWarnings, record.RowsProcessed,
		reportJSON, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// GetRun retrieves a run record by its ID
func (l *runLedger) GetRun(ctx context.Context, id core.RunID) (*run.Record, error) {
	query := `SELECT
		id, input_file, status, passed, total_errors, total_warnings,
		rows_processed, report, created_at
	FROM validation_runs WHERE id = $1`

	record, err := scanRecord(l.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("run", id.String())
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return record, nil
}

// ListRuns retrieves run records, newest first, with optional status
// filtering and pagination
func (l *runLedger) ListRuns(ctx context.Context, filters ports.RunFilters) ([]run.Record, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT
		id, input_file, status, passed, total_errors, total_warnings,
		rows_processed, report, created_at
	FROM validation_runs`
	args := []interface{}{}

	if filters.Status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, filters.Status, limit, filters.Offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, filters.Offset)
	}

	rows, err := l.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []run.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// Summary aggregates the ledger into headline counts
func (l *runLedger) Summary(ctx context.Context) (run.Summary, error) {
	query := `SELECT
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN passed THEN 1 ELSE 0 END), 0) AS passed,
		COALESCE(SUM(total_errors), 0) AS errors,
		COALESCE(SUM(total_warnings), 0) AS warnings
	FROM validation_runs`

	var total, passed, errCount, warnCount int
	if err := l.db.QueryRowContext(ctx, query).Scan(&total, &passed, &errCount, &warnCount); err != nil {
		return run.Summary{}, fmt.Errorf("failed to summarize runs: %w", err)
	}

	summary := run.Summary{
		TotalRuns:     total,
		Passed:        passed,
		Failed:        total - passed,
		TotalErrors:   errCount,
		TotalWarnings: warnCount,
	}
	if total > 0 {
		summary.PassRate = float64(passed) / float64(total) * 100
	}
	return summary, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*run.Record, error) {
	var record run.Record
	var reportJSON []byte

	err := row.Scan(
		&record.ID, &record.InputFile, &record.Status, &record.Passed,
		&record.TotalErrors, &record.TotalWarnings, &record.RowsProcessed,
		&reportJSON, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var report findings.Report
	if err := json.Unmarshal(reportJSON, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	record.Report = report
	return &record, nil
}
