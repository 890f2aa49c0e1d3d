package tabular

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"benchgate/domain/core"
	"benchgate/domain/table"

	"github.com/xuri/excelize/v2"
)

// Candidate delimiters tried in fixed priority order. The first one that
// yields more than one column wins; no cross-row consistency check is
// applied. Known limitation: a file with exactly one real data column can
// never be accepted, and a stray candidate character inside the first
// line of a genuinely single-column file can misfire. Kept as-is for
// compatibility with existing submission tooling.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// DataReader loads delimited text or Excel workbooks into a Table.
type DataReader struct {
	filePath string
	fileType string // "delimited" or "xlsx"
}

// NewDataReader creates a reader for the given path. Files with an .xlsx
// extension are read through excelize; everything else goes through
// delimiter detection.
func NewDataReader(filePath string) *DataReader {
	fileType := "delimited"
	if strings.ToLower(filepath.Ext(filePath)) == ".xlsx" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Load materializes the file as a table. A nonexistent path maps to
// core.ErrFileNotFound and an undetectable dialect to
// core.ErrInvalidFormat, both of which the pipeline converts to critical
// findings. Any other filesystem failure surfaces as an unreadable error.
func (r *DataReader) Load() (*table.Table, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrFileNotFound
		}
		return nil, core.NewUnreadableError(r.filePath, err)
	}

	switch r.fileType {
	case "xlsx":
		return r.loadExcel()
	default:
		return r.loadDelimited()
	}
}

func (r *DataReader) loadDelimited() (*table.Table, error) {
	raw, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, core.NewUnreadableError(r.filePath, err)
	}

	for _, delim := range candidateDelimiters {
		rows, ok := parseWithDelimiter(raw, delim)
		if !ok {
			continue
		}
		if len(rows) > 0 && len(rows[0]) > 1 {
			return buildTable(rows), nil
		}
	}

	return nil, core.ErrInvalidFormat
}

// parseWithDelimiter attempts a full parse of the file with one
// delimiter. A parse error just disqualifies the candidate.
func parseWithDelimiter(raw []byte, delim rune) ([][]string, bool) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, false
	}
	return rows, true
}

func (r *DataReader) loadExcel() (*table.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, core.NewUnreadableError(r.filePath, err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil || len(rows) == 0 {
		return nil, core.ErrInvalidFormat
	}

	return buildTable(rows), nil
}

// buildTable converts raw rows into a Table, trimming whitespace around
// every cell (the delimiter-adjacent trim promised by the loader).
func buildTable(rows [][]string) *table.Table {
	headers := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		data = append(data, cells)
	}
	return table.New(headers, data)
}
