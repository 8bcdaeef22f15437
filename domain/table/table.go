package table

import (
	"fmt"

	"wbreport/internal/errors"
)

// Well-known column names of a World Bank DataBank export
const (
	ColumnCountryName = "Country Name"
	ColumnTime        = "Time"
)

// Table is an ordered set of rows aligned with a header list. A Table is never
// mutated after construction: every operation returns a new Table, and row
// storage may be shared between tables because cells are never written.
type Table struct {
	headers []string
	index   map[string]int
	rows    [][]Value
}

// New builds a table. Headers must be unique and every row must have one cell per header.
func New(headers []string, rows [][]Value) (*Table, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := index[h]; dup {
			return nil, errors.InvalidInput(fmt.Sprintf("duplicate column %q", h))
		}
		index[h] = i
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d has %d cells, expected %d", i, len(row), len(headers)))
		}
	}
	return &Table{
		headers: append([]string(nil), headers...),
		index:   index,
		rows:    rows,
	}, nil
}

// MustNew is New for fixtures whose shape is known to be valid
func MustNew(headers []string, rows [][]Value) *Table {
	t, err := New(headers, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// FromStrings builds a table from raw string cells, treating "" as missing
func FromStrings(headers []string, records [][]string) (*Table, error) {
	rows := make([][]Value, len(records))
	for i, rec := range records {
		row := make([]Value, len(rec))
		for j, cell := range rec {
			row[j] = NewStringValue(cell)
		}
		rows[i] = row
	}
	return New(headers, rows)
}

// Headers returns a copy of the column names in order
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.headers)
}

// HasColumn reports whether name is an exact header
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the cell at row i for column; unknown columns read as missing
func (t *Table) Value(i int, column string) Value {
	j, ok := t.index[column]
	if !ok {
		return NewMissingValue()
	}
	return t.rows[i][j]
}

// Row returns a copy of row i
func (t *Table) Row(i int) []Value {
	return append([]Value(nil), t.rows[i]...)
}

// Column returns a copy of the named column
func (t *Table) Column(name string) ([]Value, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.SchemaInvalid(name)
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out, nil
}

// IsComplete reports whether row i has no missing cell
func (t *Table) IsComplete(i int) bool {
	for _, v := range t.rows[i] {
		if v.IsMissing() {
			return false
		}
	}
	return true
}

// Subset returns the rows at indices, in the given order
func (t *Table) Subset(indices []int) *Table {
	rows := make([][]Value, len(indices))
	for k, i := range indices {
		rows[k] = t.rows[i]
	}
	return &Table{headers: t.headers, index: t.index, rows: rows}
}

// Head returns at most the first n rows
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return &Table{headers: t.headers, index: t.index, rows: t.rows[:n:n]}
}

// DropIncomplete removes every row that contains a missing cell
func (t *Table) DropIncomplete() *Table {
	keep := make([]int, 0, len(t.rows))
	for i := range t.rows {
		if t.IsComplete(i) {
			keep = append(keep, i)
		}
	}
	return t.Subset(keep)
}

// WithColumn returns a table whose named column is replaced by values
func (t *Table) WithColumn(name string, values []Value) (*Table, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.SchemaInvalid(name)
	}
	if len(values) != len(t.rows) {
		return nil, errors.InvalidInput(fmt.Sprintf("column %q: got %d values for %d rows", name, len(values), len(t.rows)))
	}
	rows := make([][]Value, len(t.rows))
	for i, row := range t.rows {
		next := append([]Value(nil), row...)
		next[j] = values[i]
		rows[i] = next
	}
	return &Table{headers: t.headers, index: t.index, rows: rows}, nil
}

// SwapValues exchanges the contents of columns a and b in every row.
// Column names and order are left as they are.
func (t *Table) SwapValues(a, b string) (*Table, error) {
	ia, okA := t.index[a]
	ib, okB := t.index[b]
	switch {
	case !okA && !okB:
		return nil, errors.SchemaInvalid(a, b)
	case !okA:
		return nil, errors.SchemaInvalid(a)
	case !okB:
		return nil, errors.SchemaInvalid(b)
	}
	rows := make([][]Value, len(t.rows))
	for i, row := range t.rows {
		next := append([]Value(nil), row...)
		next[ia], next[ib] = row[ib], row[ia]
		rows[i] = next
	}
	return &Table{headers: t.headers, index: t.index, rows: rows}, nil
}
