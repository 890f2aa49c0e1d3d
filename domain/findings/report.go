package findings

import (
	"time"
)

// StatusPass and StatusFail are the two terminal run verdicts.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Summary carries the headline counts of a validation run.
type Summary struct {
	TotalErrors   int `json:"total_errors"`
	TotalWarnings int `json:"total_warnings"`
	RowsProcessed int `json:"rows_processed"`
}

// Report is the sole output of a validation run. Field names and nesting
// are an external contract consumed by collaborators that route findings
// by type string; do not rename them.
type Report struct {
	Timestamp        string    `json:"timestamp"`
	InputFile        string    `json:"input_file"`
	ValidationStatus string    `json:"validation_status"`
	Passed           bool      `json:"passed"`
	Summary          Summary   `json:"summary"`
	Errors           []Finding `json:"errors"`
	Warnings         []Finding `json:"warnings"`
}

// NewReport assembles the final report from accumulated findings. The
// verdict is PASS iff no errors were recorded; warnings never block.
func NewReport(inputFile string, rowsProcessed int, errs, warns []Finding) Report {
	if errs == nil {
		errs = []Finding{}
	}
	if warns == nil {
		warns = []Finding{}
	}

	passed := len(errs) == 0
	status := StatusFail
	if passed {
		status = StatusPass
	}

	return Report{
		Timestamp:        time.Now().Format(time.RFC3339),
		InputFile:        inputFile,
		ValidationStatus: status,
		Passed:           passed,
		Summary: Summary{
			TotalErrors:   len(errs),
			TotalWarnings: len(warns),
			RowsProcessed: rowsProcessed,
		},
		Errors:   errs,
		Warnings: warns,
	}
}

// ErrorTypes returns the distinct error type strings in first-seen order.
func (r Report) ErrorTypes() []string {
	return distinctTypes(r.Errors)
}

// WarningTypes returns the distinct warning type strings in first-seen order.
func (r Report) WarningTypes() []string {
	return distinctTypes(r.Warnings)
}

func distinctTypes(fs []Finding) []string {
	seen := make(map[string]bool)
	var types []string
	for _, f := range fs {
		if !seen[f.Type] {
			seen[f.Type] = true
			types = append(types, f.Type)
		}
	}
	return types
}
