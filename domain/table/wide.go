package table

// Wide is a pivoted table: one row per index key, one column per column key.
// Keys are kept sorted, matching the layout a pivot produces.
type Wide struct {
	IndexName  string
	RowKeys    []string
	ColumnKeys []string
	// Cells[r][c] is the value for RowKeys[r] x ColumnKeys[c]; absent pairs are missing
	Cells [][]Value
}

// Cell returns the value at rowKey x columnKey, or missing
func (w *Wide) Cell(rowKey, columnKey string) Value {
	for r, rk := range w.RowKeys {
		if rk != rowKey {
			continue
		}
		for c, ck := range w.ColumnKeys {
			if ck == columnKey {
				return w.Cells[r][c]
			}
		}
	}
	return NewMissingValue()
}

// Empty reports whether the pivot produced no rows or no columns
func (w *Wide) Empty() bool {
	return len(w.RowKeys) == 0 || len(w.ColumnKeys) == 0
}
