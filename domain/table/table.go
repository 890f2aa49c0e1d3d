package table

import (
	"sort"
	"strings"
)

// Table holds a delimited file materialized as raw string cells.
// Rows are indexed from zero in load order; pruning empty rows renumbers
// the positions that later checks report.
type Table struct {
	headers []string
	rows    [][]string
}

// New builds a table from a header row and data rows. Header names are
// trimmed; short rows are padded with blanks so every row matches the
// header width, and cells past the last header are dropped.
func New(headers []string, rows [][]string) *Table {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		cleaned[i] = strings.TrimSpace(h)
	}

	normalized := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(cleaned))
		for j := range cleaned {
			if j < len(row) {
				cells[j] = row[j]
			}
		}
		normalized[i] = cells
	}

	return &Table{headers: cleaned, rows: normalized}
}

// Headers returns the trimmed column names in file order.
func (t *Table) Headers() []string {
	return t.headers
}

// RowCount returns the number of data rows currently in the table.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.headers)
}

// HasColumn reports whether a column with the exact trimmed name exists.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column returns the cell values for the named column in row order.
func (t *Table) Column(name string) ([]string, bool) {
	idx := -1
	for i, h := range t.headers {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, true
}

// MissingColumns returns the required column names absent from the table,
// preserving the order of the required list.
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsBlank reports whether a cell counts as missing.
func IsBlank(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

func (t *Table) isRowEmpty(i int) bool {
	for _, cell := range t.rows[i] {
		if !IsBlank(cell) {
			return false
		}
	}
	return true
}

// PruneEmptyRows removes rows whose every cell is blank and returns the
// number removed. Remaining rows take new consecutive positions.
func (t *Table) PruneEmptyRows() int {
	kept := t.rows[:0]
	removed := 0
	for i := range t.rows {
		if t.isRowEmpty(i) {
			removed++
			continue
		}
		kept = append(kept, t.rows[i])
	}
	t.rows = kept
	return removed
}

// DuplicateRows finds rows that are identical across every column. The
// returned count follows the duplicates-beyond-first convention: two
// identical rows count as one duplicate. Indices cover every row that
// participates in a duplicate group, sorted ascending.
func (t *Table) DuplicateRows() (count int, indices []int) {
	groups := make(map[string][]int)
	for i, row := range t.rows {
		key := strings.Join(row, "\x1f")
		groups[key] = append(groups[key], i)
	}

	for _, members := range groups {
		if len(members) > 1 {
			count += len(members) - 1
			indices = append(indices, members...)
		}
	}
	sort.Ints(indices)
	return count, indices
}
