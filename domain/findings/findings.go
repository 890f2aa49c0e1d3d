package findings

import (
	"fmt"
)

// Severity classifies how a finding affects the run. Critical findings
// abort the pipeline; high and medium findings block a PASS verdict but
// let the remaining checks run.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// Finding type identifiers. Downstream consumers route recommendations
// by these strings, so they are part of the external contract.
const (
	TypeFileNotFound          = "FileNotFound"
	TypeInvalidFileFormat     = "InvalidFileFormat"
	TypeMissingColumns        = "MissingColumns"
	TypeEmptyRows             = "EmptyRows"
	TypeDuplicateRows         = "DuplicateRows"
	TypeInvalidDates          = "InvalidDates"
	TypeMissingMonths         = "MissingMonths"
	TypeMissingData           = "MissingData"
	TypeNonNumericValues      = "NonNumericValues"
	TypeNegativeValues        = "NegativeValues"
	TypeExtremeValues         = "ExtremeValues"
	TypePotentialUnitMismatch = "PotentialUnitMismatch"
)

// Caps on list payloads carried by findings.
const (
	MaxRowIndices    = 10
	MaxExamples      = 5
	MaxMissingMonths = 12
)

// Finding is an immutable record of a single data-quality problem. The
// kind-specific fields are populated per type and omitted otherwise.
// Warnings carry no severity in the serialized form.
type Finding struct {
	Type          string   `json:"type"`
	Message       string   `json:"message"`
	Severity      Severity `json:"severity,omitempty"`
	Column        string   `json:"column,omitempty"`
	Columns       []string `json:"columns,omitempty"`
	Count         int      `json:"count,omitempty"`
	Percentage    float64  `json:"percentage,omitempty"`
	Examples      []any    `json:"examples,omitempty"`
	RowIndices    []int    `json:"row_indices,omitempty"`
	MissingMonths []string `json:"missing_months,omitempty"`
	Median        float64  `json:"median,omitempty"`
	Threshold     float64  `json:"threshold,omitempty"`
}

func capInts(values []int, max int) []int {
	if len(values) > max {
		values = values[:max]
	}
	return values
}

func capStrings(values []string, max int) []string {
	if len(values) > max {
		values = values[:max]
	}
	return values
}

func stringExamples(values []string) []any {
	out := make([]any, 0, MaxExamples)
	for _, v := range values {
		if len(out) == MaxExamples {
			break
		}
		out = append(out, v)
	}
	return out
}

func floatExamples(values []float64) []any {
	out := make([]any, 0, MaxExamples)
	for _, v := range values {
		if len(out) == MaxExamples {
			break
		}
		out = append(out, v)
	}
	return out
}

// FileNotFound reports a nonexistent input path.
func FileNotFound(path string) Finding {
	return Finding{
		Type:     TypeFileNotFound,
		Message:  fmt.Sprintf("Input file not found: %s", path),
		Severity: SeverityCritical,
	}
}

// InvalidFileFormat reports that no candidate delimiter produced a table.
func InvalidFileFormat() Finding {
	return Finding{
		Type:     TypeInvalidFileFormat,
		Message:  "Failed to load file with any standard delimiter",
		Severity: SeverityCritical,
	}
}

// MissingColumns reports absent required columns.
func MissingColumns(columns []string) Finding {
	return Finding{
		Type:     TypeMissingColumns,
		Message:  fmt.Sprintf("Missing required columns: %v", columns),
		Severity: SeverityCritical,
		Columns:  columns,
	}
}

// EmptyRows warns about fully blank rows removed before later checks.
func EmptyRows(count int) Finding {
	return Finding{
		Type:    TypeEmptyRows,
		Message: fmt.Sprintf("Found %d completely empty rows - will be ignored", count),
		Count:   count,
	}
}

// DuplicateRows reports identical rows. Count follows the
// duplicates-beyond-first convention; indices list every participant.
func DuplicateRows(count int, indices []int) Finding {
	return Finding{
		Type:       TypeDuplicateRows,
		Message:    fmt.Sprintf("Found %d duplicate rows", count),
		Severity:   SeverityHigh,
		Count:      count,
		RowIndices: capInts(indices, MaxRowIndices),
	}
}

// InvalidDates reports unparseable Date cells with raw examples.
func InvalidDates(count int, examples []string) Finding {
	return Finding{
		Type:     TypeInvalidDates,
		Message:  fmt.Sprintf("Found %d invalid date entries", count),
		Severity: SeverityHigh,
		Count:    count,
		Examples: stringExamples(examples),
	}
}

// MissingMonths reports calendar months absent from the observed range.
func MissingMonths(months []string) Finding {
	return Finding{
		Type:          TypeMissingMonths,
		Message:       fmt.Sprintf("Found %d missing months in date sequence", len(months)),
		Severity:      SeverityMedium,
		Count:         len(months),
		MissingMonths: capStrings(months, MaxMissingMonths),
	}
}

// MissingData reports blank cells in a required column.
func MissingData(column string, count int, percentage float64, indices []int) Finding {
	return Finding{
		Type:       TypeMissingData,
		Message:    fmt.Sprintf("Column '%s' has %d missing values (%.2f%%)", column, count, percentage),
		Severity:   SeverityHigh,
		Column:     column,
		Count:      count,
		Percentage: percentage,
		RowIndices: capInts(indices, MaxRowIndices),
	}
}

// NonNumericValues reports cells that are present but fail numeric parsing.
func NonNumericValues(column string, count int, examples []string) Finding {
	return Finding{
		Type:     TypeNonNumericValues,
		Message:  fmt.Sprintf("Column '%s' has %d non-numeric values", column, count),
		Severity: SeverityHigh,
		Column:   column,
		Count:    count,
		Examples: stringExamples(examples),
	}
}

// NegativeValues reports values below the configured minimum threshold.
// Examples carry the parsed numbers, not the raw cell text.
func NegativeValues(column string, count int, examples []float64, indices []int) Finding {
	return Finding{
		Type:       TypeNegativeValues,
		Message:    fmt.Sprintf("Column '%s' has %d negative values", column, count),
		Severity:   SeverityHigh,
		Column:     column,
		Count:      count,
		Examples:   floatExamples(examples),
		RowIndices: capInts(indices, MaxRowIndices),
	}
}

// ExtremeValues warns about values above the configured maximum threshold.
// Examples carry the parsed numbers, not the raw cell text.
func ExtremeValues(column string, count int, examples []float64, threshold float64) Finding {
	return Finding{
		Type:      TypeExtremeValues,
		Message:   fmt.Sprintf("Column '%s' has %d extremely high values (>%v)", column, count, threshold),
		Column:    column,
		Count:     count,
		Examples:  floatExamples(examples),
		Threshold: threshold,
	}
}

// PotentialUnitMismatch warns that a minority of values sit more than two
// orders of magnitude away from the column median.
func PotentialUnitMismatch(column string, count int, median float64, examples []float64) Finding {
	return Finding{
		Type:     TypePotentialUnitMismatch,
		Message:  fmt.Sprintf("Column '%s' may have unit mismatches - %d values differ significantly from median", column, count),
		Column:   column,
		Count:    count,
		Median:   median,
		Examples: floatExamples(examples),
	}
}

// IsError reports whether the finding blocks a PASS verdict. Warnings
// are constructed without a severity.
func (f Finding) IsError() bool {
	return f.Severity != ""
}
