package validation

import (
	"fmt"
	"strings"
	"time"

	"benchgate/domain/findings"
	"benchgate/domain/table"
)

// dateFormats are tried in order for every Date cell. The list mirrors
// what submission tooling has been observed to produce. Unpadded layout
// digits accept both padded and unpadded input, so "1/2/2006" also
// covers "01/02/2006".
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-1-2",
	"1/2/2006",
	"1/2/2006 15:04",
	"2006/1/2",
	"02-Jan-2006",
	"2006-1",
}

func parseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validateDates parses the Date column. Blank cells are treated as
// invalid dates here (the missing-data stage reports them separately for
// numeric columns only). The derived date column is retained only when
// every cell parses, so one bad cell disables month-gap checking for the
// whole run.
func (v *Runner) validateDates(r *Run) {
	cells, ok := r.tbl.Column("Date")
	if !ok {
		return
	}

	parsed := make([]time.Time, 0, len(cells))
	var invalidExamples []string
	invalid := 0

	for _, cell := range cells {
		if t, success := parseDate(cell); success {
			parsed = append(parsed, t)
			continue
		}
		invalid++
		if len(invalidExamples) < findings.MaxExamples {
			invalidExamples = append(invalidExamples, cell)
		}
	}

	if invalid > 0 {
		v.logger.Error("Found %d invalid date entries", invalid)
		r.addError(findings.InvalidDates(invalid, invalidExamples))
		return
	}

	v.logger.Debug("All dates successfully parsed")
	r.dates = parsed
}

// checkMissingMonths diffs the months present against the inclusive
// month range spanning earliest to latest date. Needs at least two valid
// dates; with fewer the check is skipped without a finding.
func (v *Runner) checkMissingMonths(r *Run) {
	if r.dates == nil || len(r.dates) < 2 {
		return
	}

	earliest, latest := r.dates[0], r.dates[0]
	present := make(map[string]bool, len(r.dates))
	for _, d := range r.dates {
		if d.Before(earliest) {
			earliest = d
		}
		if d.After(latest) {
			latest = d
		}
		present[monthLabel(d)] = true
	}

	var missing []string
	cur := monthStart(earliest)
	end := monthStart(latest)
	for !cur.After(end) {
		if label := monthLabel(cur); !present[label] {
			missing = append(missing, label)
		}
		cur = cur.AddDate(0, 1, 0)
	}

	if len(missing) > 0 {
		v.logger.Error("Found %d missing months in date sequence", len(missing))
		r.addError(findings.MissingMonths(missing))
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// blankIndices returns the pruned-table positions of blank cells.
func blankIndices(cells []string) []int {
	var idx []int
	for i, cell := range cells {
		if table.IsBlank(cell) {
			idx = append(idx, i)
		}
	}
	return idx
}
