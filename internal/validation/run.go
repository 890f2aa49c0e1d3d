package validation

import (
	"time"

	"benchgate/domain/findings"
	"benchgate/domain/table"
	"benchgate/internal/profiling"
)

// Required schema for utility consumption submissions.
var (
	RequiredColumns = []string{"Date", "kWh", "Therms", "Demand"}
	NumericColumns  = []string{"kWh", "Therms", "Demand"}
)

// Options carries the tunable thresholds of a validation run.
type Options struct {
	MinValueThreshold float64
	MaxValueThreshold float64
}

// DefaultOptions returns the standard submission-gate thresholds.
func DefaultOptions() Options {
	return Options{
		MinValueThreshold: 0.0,
		MaxValueThreshold: 1e9,
	}
}

// Result bundles the report with the per-column profiles computed along
// the way. The report alone is the external contract; profiles are extra
// context for operators.
type Result struct {
	Report   findings.Report
	Profiles map[string]profiling.ColumnProfile
}

// Run is the mutable state of one validation pass. Stages append
// findings and derived columns; nothing is shared between runs, so
// parallel runs over different files need no locking.
type Run struct {
	inputFile string
	opts      Options

	tbl      *table.Table
	errors   []findings.Finding
	warnings []findings.Finding

	// Derived columns. dates is nil when any Date cell failed to parse;
	// numeric holds only columns whose coercion fully succeeded.
	dates   []time.Time
	numeric map[string]numericColumn

	profiles map[string]profiling.ColumnProfile
}

// numericColumn is a coerced column: parsed values paired with the
// pruned-table row positions they came from.
type numericColumn struct {
	values []float64
	rows   []int
}

func newRun(inputFile string, opts Options) *Run {
	return &Run{
		inputFile: inputFile,
		opts:      opts,
		numeric:   make(map[string]numericColumn),
		profiles:  make(map[string]profiling.ColumnProfile),
	}
}

func (r *Run) addError(f findings.Finding) {
	r.errors = append(r.errors, f)
}

func (r *Run) addWarning(f findings.Finding) {
	r.warnings = append(r.warnings, f)
}

// finish assembles the terminal report. rowsProcessed reflects the table
// as it stands: post-prune for completed runs, the loaded row count when
// the schema gate aborted, zero when the file never loaded.
func (r *Run) finish() Result {
	rows := 0
	if r.tbl != nil {
		rows = r.tbl.RowCount()
	}
	return Result{
		Report:   findings.NewReport(r.inputFile, rows, r.errors, r.warnings),
		Profiles: r.profiles,
	}
}
