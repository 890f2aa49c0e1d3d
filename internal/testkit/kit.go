package testkit

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"benchgate/domain/core"
	"benchgate/domain/run"
	"benchgate/ports"
)

// InMemoryRunLedger is a ledger kept entirely in memory. It backs tests
// and CLI invocations that run without a database.
type InMemoryRunLedger struct {
	mu      sync.RWMutex
	records map[core.RunID]run.Record
	order   []core.RunID
}

// NewInMemoryRunLedger creates an empty in-memory ledger.
func NewInMemoryRunLedger() *InMemoryRunLedger {
	return &InMemoryRunLedger{records: make(map[core.RunID]run.Record)}
}

var _ ports.RunLedger = (*InMemoryRunLedger)(nil)

// RecordRun appends a run record.
func (l *InMemoryRunLedger) RecordRun(_ context.Context, record run.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[record.ID] = record
	l.order = append(l.order, record.ID)
	return nil
}

// GetRun retrieves a record by ID.
func (l *InMemoryRunLedger) GetRun(_ context.Context, id core.RunID) (*run.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	record, ok := l.records[id]
	if !ok {
		return nil, core.NewNotFoundError("run", id.String())
	}
	return &record, nil
}

// ListRuns returns records newest first with optional status filtering.
func (l *InMemoryRunLedger) ListRuns(_ context.Context, filters ports.RunFilters) ([]run.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var records []run.Record
	for _, id := range l.order {
		record := l.records[id]
		if filters.Status != "" && record.Status != filters.Status {
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if filters.Offset > 0 {
		if filters.Offset >= len(records) {
			return nil, nil
		}
		records = records[filters.Offset:]
	}
	if filters.Limit > 0 && len(records) > filters.Limit {
		records = records[:filters.Limit]
	}
	return records, nil
}

// Summary aggregates all stored records.
func (l *InMemoryRunLedger) Summary(_ context.Context) (run.Summary, error) {
	records, err := l.ListRuns(context.Background(), ports.RunFilters{Limit: -1})
	if err != nil {
		return run.Summary{}, err
	}
	return run.Summarize(records), nil
}

// WriteCSV writes CSV content to a temp file and returns its path. The
// file is cleaned up with the test.
func WriteCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}
