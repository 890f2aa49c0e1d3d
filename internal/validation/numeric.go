package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"benchgate/domain/findings"
	"benchgate/domain/table"
	"benchgate/internal/profiling"
)

func parseNumeric(cell string) (float64, bool) {
	val, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// checkMissingData counts blank cells per numeric column against the
// pruned row count.
func (v *Runner) checkMissingData(r *Run) {
	total := r.tbl.RowCount()
	if total == 0 {
		return
	}

	for _, col := range NumericColumns {
		cells, ok := r.tbl.Column(col)
		if !ok {
			continue
		}

		indices := blankIndices(cells)
		if len(indices) == 0 {
			continue
		}

		pct := math.Round(float64(len(indices))/float64(total)*100*100) / 100
		v.logger.Error("Column '%s' has %d missing values (%.2f%%)", col, len(indices), pct)
		r.addError(findings.MissingData(col, len(indices), pct, indices))
	}
}

// coerceNumericColumns parses every non-missing cell of each numeric
// column. Columns with any unparseable cell get a NonNumericValues error
// and no derived column, which skips their range and mismatch checks.
func (v *Runner) coerceNumericColumns(r *Run) {
	for _, col := range NumericColumns {
		cells, ok := r.tbl.Column(col)
		if !ok {
			continue
		}

		derived := numericColumn{}
		var badExamples []string
		bad := 0

		for i, cell := range cells {
			if table.IsBlank(cell) {
				continue
			}
			val, parsed := parseNumeric(cell)
			if !parsed {
				bad++
				if len(badExamples) < findings.MaxExamples {
					badExamples = append(badExamples, cell)
				}
				continue
			}
			derived.values = append(derived.values, val)
			derived.rows = append(derived.rows, i)
		}

		if bad > 0 {
			v.logger.Error("Column '%s' has %d non-numeric values", col, bad)
			r.addError(findings.NonNumericValues(col, bad, badExamples))
			continue
		}
		r.numeric[col] = derived
	}
}

// checkValueRanges applies the min/max thresholds to every coerced
// column. Values below the minimum are errors; values above the maximum
// are warnings only.
func (v *Runner) checkValueRanges(r *Run) {
	for _, col := range NumericColumns {
		derived, ok := r.numeric[col]
		if !ok {
			continue
		}

		var negExamples, extremeExamples []float64
		var negIndices []int
		negatives, extremes := 0, 0

		for i, val := range derived.values {
			if val < r.opts.MinValueThreshold {
				negatives++
				if len(negExamples) < findings.MaxExamples {
					negExamples = append(negExamples, val)
				}
				negIndices = append(negIndices, derived.rows[i])
			}
			if val > r.opts.MaxValueThreshold {
				extremes++
				if len(extremeExamples) < findings.MaxExamples {
					extremeExamples = append(extremeExamples, val)
				}
			}
		}

		if negatives > 0 {
			v.logger.Error("Column '%s' has %d negative values", col, negatives)
			r.addError(findings.NegativeValues(col, negatives, negExamples, negIndices))
		}
		if extremes > 0 {
			v.logger.Warn("Column '%s' has %d extremely high values", col, extremes)
			r.addWarning(findings.ExtremeValues(col, extremes, extremeExamples, r.opts.MaxValueThreshold))
		}
	}
}

// detectUnitMismatches flags columns where a minority of values sit more
// than two orders of magnitude from the median. The 100x band and the
// below-half guard are deliberate: the heuristic targets a handful of
// misentered values, not a column that is systematically bimodal.
func (v *Runner) detectUnitMismatches(r *Run) {
	for _, col := range NumericColumns {
		derived, ok := r.numeric[col]
		if !ok || len(derived.values) < 2 {
			continue
		}

		mean, err := stats.Mean(derived.values)
		if err != nil {
			continue
		}
		stdDev, err := stats.StandardDeviation(derived.values)
		if err != nil {
			continue
		}
		if stdDev == 0 || mean == 0 {
			continue
		}

		median, err := stats.Median(derived.values)
		if err != nil || median <= 0 {
			continue
		}

		var outliers []float64
		for _, val := range derived.values {
			if val > median*100 || val < median/100 {
				outliers = append(outliers, val)
			}
		}

		if len(outliers) > 0 && float64(len(outliers)) < float64(len(derived.values))*0.5 {
			v.logger.Warn("Column '%s' may have unit mismatches - %d values differ significantly from median",
				col, len(outliers))
			r.addWarning(findings.PotentialUnitMismatch(col, len(outliers), median, outliers))
		}
	}
}

// profileColumns computes distribution summaries for every successfully
// coerced column. Failures here are non-fatal; a column too small to
// profile simply has no profile.
func (v *Runner) profileColumns(r *Run) {
	for _, col := range NumericColumns {
		derived, ok := r.numeric[col]
		if !ok {
			continue
		}
		profile, err := profiling.Profile(col, derived.values)
		if err != nil {
			v.logger.Debug("Skipping profile for %s: %v", col, err)
			continue
		}
		r.profiles[col] = profile
	}
}
