package validation

import (
	"errors"

	"benchgate/adapters/tabular"
	"benchgate/domain/core"
	"benchgate/domain/findings"
	"benchgate/internal"
)

// Runner executes the fixed validation pipeline over one file per call.
// Runners are stateless between calls and safe for concurrent use.
type Runner struct {
	logger *internal.Logger
}

// NewRunner creates a pipeline runner.
func NewRunner() *Runner {
	return &Runner{logger: internal.NewDefaultLogger()}
}

// Validate runs the full pipeline and always yields a report for normal
// bad data. The error return is reserved for genuinely unreadable files
// and internal faults; schema, format, and quality problems become
// findings instead.
func (v *Runner) Validate(inputPath string, opts Options) (Result, error) {
	v.logger.Info("Starting validation of %s", inputPath)
	r := newRun(inputPath, opts)

	reader := tabular.NewDataReader(inputPath)
	tbl, err := reader.Load()
	switch {
	case err == nil:
		r.tbl = tbl
	case errors.Is(err, core.ErrFileNotFound):
		v.logger.Error("Input file not found: %s", inputPath)
		r.addError(findings.FileNotFound(inputPath))
		return r.finish(), nil
	case errors.Is(err, core.ErrInvalidFormat):
		v.logger.Error("Could not detect a delimiter for %s", inputPath)
		r.addError(findings.InvalidFileFormat())
		return r.finish(), nil
	default:
		return Result{}, err
	}

	v.logger.Info("Loaded %d rows, %d columns", tbl.RowCount(), tbl.ColumnCount())

	// Hard gate: remaining stages assume the required columns exist.
	if !v.checkSchema(r) {
		return r.finish(), nil
	}

	v.checkEmptyRows(r)
	v.checkDuplicateRows(r)
	v.validateDates(r)
	v.checkMissingMonths(r)
	v.checkMissingData(r)
	v.coerceNumericColumns(r)
	v.checkValueRanges(r)
	v.detectUnitMismatches(r)
	v.profileColumns(r)

	result := r.finish()
	v.logger.Info("Validation %s: %d errors, %d warnings, %d rows",
		result.Report.ValidationStatus,
		result.Report.Summary.TotalErrors,
		result.Report.Summary.TotalWarnings,
		result.Report.Summary.RowsProcessed)
	return result, nil
}

// checkSchema verifies the required columns are present after header
// trimming. Order-independent; extra columns are ignored.
func (v *Runner) checkSchema(r *Run) bool {
	missing := r.tbl.MissingColumns(RequiredColumns)
	if len(missing) > 0 {
		v.logger.Error("Missing required columns: %v", missing)
		r.addError(findings.MissingColumns(missing))
		return false
	}
	v.logger.Debug("All required columns present")
	return true
}

// checkEmptyRows prunes fully blank rows before any later stage sees the
// table, so row positions reported downstream come from the pruned table.
func (v *Runner) checkEmptyRows(r *Run) {
	removed := r.tbl.PruneEmptyRows()
	if removed > 0 {
		v.logger.Warn("Found %d completely empty rows - will be ignored", removed)
		r.addWarning(findings.EmptyRows(removed))
	}
}

func (v *Runner) checkDuplicateRows(r *Run) {
	count, indices := r.tbl.DuplicateRows()
	if count > 0 {
		v.logger.Error("Found %d duplicate rows", count)
		r.addError(findings.DuplicateRows(count, indices))
	}
}
