package models

import (
	"iter"
	"strings"

	messages "github.com/cucumber/messages/go/v21"
)

// Row represents a single row of a DataTable or an Examples table.
type Row struct {
	cells   []string
	headers []string // reference to the table's header row (first row values)
	line    int
}

// Get returns the cell value by column header name (case-insensitive).
// Returns an empty string if the column is not found or the row has fewer cells.
func (r Row) Get(col string) string {
	colLower := strings.ToLower(col)
	for i, h := range r.headers {
		if strings.ToLower(h) == colLower {
			if i < len(r.cells) {
				return r.cells[i]
			}
			return ""
		}
	}
	return ""
}

// Cell returns the cell value by column index (0-based).
// Returns an empty string if the index is out of range.
func (r Row) Cell(index int) string {
	if index < 0 || index >= len(r.cells) {
		return ""
	}
	return r.cells[index]
}

// Values returns all cell values in order.
func (r Row) Values() []string {
	cp := make([]string, len(r.cells))
	copy(cp, r.cells)
	return cp
}

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return len(r.cells)
}

// Line returns the source line of the row, 0 when unknown.
func (r Row) Line() int {
	return r.line
}

// Table is a header row followed by data rows.
type Table struct {
	headers []string
	rows    []Row
}

// NewTable creates a Table from raw string data.
// The first row is used as column headers for Get() lookups.
func NewTable(data [][]string) *Table {
	return NewTableWithLines(data, nil)
}

// NewTableWithLines creates a Table whose rows remember their source line.
// lines may be shorter than data; missing entries are left at 0.
func NewTableWithLines(data [][]string, lines []int) *Table {
	if len(data) == 0 {
		return &Table{}
	}

	headers := make([]string, len(data[0]))
	copy(headers, data[0])

	rows := make([]Row, len(data))
	for i, cells := range data {
		cellsCopy := make([]string, len(cells))
		copy(cellsCopy, cells)
		rows[i] = Row{
			cells:   cellsCopy,
			headers: headers,
		}
		if i < len(lines) {
			rows[i].line = lines[i]
		}
	}

	return &Table{
		headers: headers,
		rows:    rows,
	}
}

// NewTableFromDataTable creates a Table from a Gherkin DataTable message.
// Returns nil when the step carries no table.
func NewTableFromDataTable(dt *messages.DataTable) *Table {
	if dt == nil {
		return nil
	}
	return newTableFromRows(dt.Rows)
}

// NewTableFromExamples creates a Table from the header and body of an
// Examples block. Returns nil when the block has no table at all.
func NewTableFromExamples(ex *messages.Examples) *Table {
	if ex == nil || (ex.TableHeader == nil && len(ex.TableBody) == 0) {
		return nil
	}
	rows := make([]*messages.TableRow, 0, len(ex.TableBody)+1)
	if ex.TableHeader != nil {
		rows = append(rows, ex.TableHeader)
	}
	rows = append(rows, ex.TableBody...)
	return newTableFromRows(rows)
}

func newTableFromRows(rows []*messages.TableRow) *Table {
	data := make([][]string, len(rows))
	lines := make([]int, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.Value
		}
		data[i] = cells
		if row.Location != nil {
			lines[i] = int(row.Location.Line)
		}
	}
	return NewTableWithLines(data, lines)
}

// Headers returns the column headers (values from the first row).
func (t *Table) Headers() []string {
	cp := make([]string, len(t.headers))
	copy(cp, t.headers)
	return cp
}

// Len returns the total number of rows (including the header row).
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the row at index (0 is the header row).
func (t *Table) Row(index int) (Row, bool) {
	if index < 0 || index >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[index], true
}

// Data returns a copy of every row's cells, header row first.
func (t *Table) Data() [][]string {
	data := make([][]string, len(t.rows))
	for i, row := range t.rows {
		data[i] = row.Values()
	}
	return data
}

// All returns an iterator over all rows (including the header row).
// The index is 0-based.
//
// Usage:
//
//	for i, row := range table.All() {
//	    fmt.Println(i, row.Cell(0))
//	}
func (t *Table) All() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, row := range t.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// SkipHeader returns an iterator over data rows only (skips the first row).
// The index is 0-based starting from the first data row.
// Row.Get(col) uses the skipped header row for column name lookups.
//
// Usage:
//
//	for i, row := range table.SkipHeader() {
//	    name := row.Get("name")
//	    fmt.Println(i, name)
//	}
func (t *Table) SkipHeader() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := 1; i < len(t.rows); i++ {
			if !yield(i-1, t.rows[i]) {
				return
			}
		}
	}
}

// Subset returns a table holding the header row and the single data row at
// rowIndex (0-based, header excluded).
func (t *Table) Subset(rowIndex int) *Table {
	if len(t.rows) == 0 || rowIndex < 0 || rowIndex+1 >= len(t.rows) {
		return &Table{headers: t.Headers()}
	}
	header, row := t.rows[0], t.rows[rowIndex+1]
	return NewTableWithLines(
		[][]string{header.Values(), row.Values()},
		[]int{header.line, row.line},
	)
}
