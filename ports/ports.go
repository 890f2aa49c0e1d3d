package ports

import (
	"context"

	"benchgate/domain/core"
	"benchgate/domain/run"
)

// RunLedgerWriter provides append-only write access to run records.
type RunLedgerWriter interface {
	RecordRun(ctx context.Context, record run.Record) error
}

// RunLedgerReader provides read-only access to stored run records.
// Use this for queries, status reporting, and UI/API access.
type RunLedgerReader interface {
	GetRun(ctx context.Context, id core.RunID) (*run.Record, error)
	ListRuns(ctx context.Context, filters RunFilters) ([]run.Record, error)
	Summary(ctx context.Context) (run.Summary, error)
}

// RunFilters constrains ledger queries.
type RunFilters struct {
	Status string
	Limit  int
	Offset int
}

// RunLedger combines read and write access.
type RunLedger interface {
	RunLedgerWriter
	RunLedgerReader
}
