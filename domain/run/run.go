package run

import (
	"time"

	"benchgate/domain/core"
	"benchgate/domain/findings"
)

// Record is the bookkeeping entry persisted for every validation run,
// whatever its verdict.
type Record struct {
	ID            core.RunID      `json:"id"`
	InputFile     string          `json:"input_file"`
	Status        string          `json:"status"`
	Passed        bool            `json:"passed"`
	TotalErrors   int             `json:"total_errors"`
	TotalWarnings int             `json:"total_warnings"`
	RowsProcessed int             `json:"rows_processed"`
	Report        findings.Report `json:"report"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewRecord derives a ledger record from a finished report.
func NewRecord(report findings.Report) Record {
	return Record{
		ID:            core.NewRunID(),
		InputFile:     report.InputFile,
		Status:        report.ValidationStatus,
		Passed:        report.Passed,
		TotalErrors:   report.Summary.TotalErrors,
		TotalWarnings: report.Summary.TotalWarnings,
		RowsProcessed: report.Summary.RowsProcessed,
		Report:        report,
		CreatedAt:     time.Now(),
	}
}

// Summary aggregates ledger records for status reporting.
type Summary struct {
	TotalRuns     int     `json:"total_runs"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	PassRate      float64 `json:"pass_rate"`
	TotalErrors   int     `json:"total_errors_found"`
	TotalWarnings int     `json:"total_warnings_found"`
}

// Summarize folds a set of records into aggregate counts.
func Summarize(records []Record) Summary {
	s := Summary{TotalRuns: len(records)}
	for _, r := range records {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		s.TotalErrors += r.TotalErrors
		s.TotalWarnings += r.TotalWarnings
	}
	if s.TotalRuns > 0 {
		s.PassRate = float64(s.Passed) / float64(s.TotalRuns) * 100
	}
	return s
}
