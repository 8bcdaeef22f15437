package dataset

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/samber/lo"

	"wbreport/adapters/coercer"
	"wbreport/domain/table"
	"wbreport/internal/errors"
)

// YearRange is an inclusive range of years
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Years returns the inclusive range from..to
func Years(from, to int) *YearRange {
	return &YearRange{From: from, To: to}
}

// Year returns a single-year range
func Year(y int) *YearRange {
	return &YearRange{From: y, To: y}
}

// Contains reports whether year lies within the range
func (r YearRange) Contains(year float64) bool {
	return year >= float64(r.From) && year <= float64(r.To)
}

func (r YearRange) String() string {
	if r.From == r.To {
		return strconv.Itoa(r.From)
	}
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// Selection is a set of row predicates; nil or empty fields do not restrict
type Selection struct {
	Countries []string   `json:"countries,omitempty"`
	Years     *YearRange `json:"years,omitempty"`
}

// IsEmpty reports whether the selection keeps every row
func (s Selection) IsEmpty() bool {
	return len(s.Countries) == 0 && s.Years == nil
}

var yearParser = coercer.NewNumericCoercer(coercer.DefaultCoercionConfig())

// Filter returns the rows matching every predicate of sel, in their original order.
// Countries match the Country Name cell exactly; years are read from the Time
// cell, and a Time cell that is not a number never falls inside a range.
func Filter(t *table.Table, sel Selection) *table.Table {
	if sel.IsEmpty() {
		return t
	}

	countries := lo.SliceToMap(sel.Countries, func(c string) (string, struct{}) {
		return c, struct{}{}
	})

	keep := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if len(countries) > 0 {
			cell := t.Value(i, table.ColumnCountryName)
			if cell.IsMissing() {
				continue
			}
			if _, ok := countries[cell.String()]; !ok {
				continue
			}
		}
		if sel.Years != nil {
			year, ok := YearOf(t, i)
			if !ok || !sel.Years.Contains(year) {
				continue
			}
		}
		keep = append(keep, i)
	}
	return t.Subset(keep)
}

// YearOf returns the numeric Time value of row i
func YearOf(t *table.Table, i int) (float64, bool) {
	v := yearParser.CoerceValue(t.Value(i, table.ColumnTime))
	return v.AsFloat64()
}

// Pivot reshapes t so each distinct index value becomes a row and each distinct
// columns value becomes a column, holding the numeric values cell. Rows whose
// index or column cell is missing are ignored. Two rows with the same
// (index, column) pair are a DUPLICATE_KEY error.
func Pivot(t *table.Table, index, columns, values string, c *coercer.NumericCoercer) (*table.Wide, error) {
	for _, col := range []string{index, columns, values} {
		if !t.HasColumn(col) {
			return nil, errors.SchemaInvalid(col)
		}
	}
	if c == nil {
		c = yearParser
	}

	type pair struct{ row, col string }
	cells := make(map[pair]table.Value)
	rowSet := make(map[string]table.Value)
	colSet := make(map[string]struct{})

	for i := 0; i < t.Len(); i++ {
		rv, cv := t.Value(i, index), t.Value(i, columns)
		if rv.IsMissing() || cv.IsMissing() {
			continue
		}
		key := pair{rv.String(), cv.String()}
		if _, dup := cells[key]; dup {
			return nil, errors.DuplicateKey(fmt.Sprintf("pivot: %s=%s, %s=%s occurs more than once", index, key.row, columns, key.col))
		}
		cells[key] = c.CoerceValue(t.Value(i, values))
		rowSet[key.row] = rv
		colSet[key.col] = struct{}{}
	}

	rowKeys := sortKeys(rowSet, c)
	colKeys := lo.Keys(colSet)
	sort.Strings(colKeys)

	grid := make([][]table.Value, len(rowKeys))
	for r, rk := range rowKeys {
		grid[r] = make([]table.Value, len(colKeys))
		for ci, ck := range colKeys {
			if v, ok := cells[pair{rk, ck}]; ok {
				grid[r][ci] = v
			} else {
				grid[r][ci] = table.NewMissingValue()
			}
		}
	}

	return &table.Wide{
		IndexName:  index,
		RowKeys:    rowKeys,
		ColumnKeys: colKeys,
		Cells:      grid,
	}, nil
}

// sortKeys orders numerically when every key is a number, lexically otherwise
func sortKeys(set map[string]table.Value, c *coercer.NumericCoercer) []string {
	keys := lo.Keys(set)
	nums := make(map[string]float64, len(keys))
	numeric := true
	for _, k := range keys {
		f, ok := c.CoerceValue(set[k]).AsFloat64()
		if !ok {
			numeric = false
			break
		}
		nums[k] = f
	}
	sort.Slice(keys, func(a, b int) bool {
		if numeric && nums[keys[a]] != nums[keys[b]] {
			return nums[keys[a]] < nums[keys[b]]
		}
		return keys[a] < keys[b]
	})
	return keys
}
