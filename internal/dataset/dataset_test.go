package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbreport/adapters/coercer"
	"wbreport/domain/table"
	"wbreport/internal/errors"
)

const indicatorX = "Real interest rate (%) [FR.INR.RINR]"

var tenCountries = []string{
	"Australia", "Canada", "China", "Germany", "India",
	"Indonesia", "Malaysia", "Poland", "United States", "Afghanistan",
}

// grid builds a transposed-layout table: countries x 2010..2020
func grid(t *testing.T) *table.Table {
	t.Helper()
	var records [][]string
	for _, c := range tenCountries {
		for y := 2010; y <= 2020; y++ {
			records = append(records, []string{c, fmt.Sprint(y), fmt.Sprintf("%d.5", y-2000)})
		}
	}
	tbl, err := table.FromStrings([]string{table.ColumnCountryName, table.ColumnTime, indicatorX}, records)
	require.NoError(t, err)
	return tbl
}

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDerivesFrames(t *testing.T) {
	path := writeDataset(t, strings.Join([]string{
		"Country Name,Time," + `"` + indicatorX + `"`,
		"2010,Australia,5",
		"2011,Australia,",
		"2010,China,7",
	}, "\n"))

	frames, err := NewLoader(nil).Load(context.Background(), path, indicatorX)
	require.NoError(t, err)

	require.Equal(t, 3, frames.Raw.Len())
	require.Equal(t, 3, frames.Transposed.Len())
	assert.Equal(t, frames.Raw.Headers(), frames.Transposed.Headers())
	for i := 0; i < frames.Raw.Len(); i++ {
		assert.True(t, frames.Transposed.Value(i, table.ColumnCountryName).Equal(frames.Raw.Value(i, table.ColumnTime)))
		assert.True(t, frames.Transposed.Value(i, table.ColumnTime).Equal(frames.Raw.Value(i, table.ColumnCountryName)))
	}
	assert.Equal(t, "Australia", frames.Transposed.Value(0, table.ColumnCountryName).String())
	assert.Equal(t, "2010", frames.Transposed.Value(0, table.ColumnTime).String())

	require.Equal(t, 2, frames.Cleaned.Len())
	assert.Equal(t, "China", frames.Cleaned.Value(1, table.ColumnCountryName).String())
}

func TestCleanedIsExactlyTheCompleteRows(t *testing.T) {
	raw, err := table.FromStrings(
		[]string{table.ColumnCountryName, table.ColumnTime, "A", "B"},
		[][]string{
			{"2010", "India", "1", "2"},
			{"2011", "India", "", "2"},
			{"2012", "India", "1", ""},
			{"", "India", "1", "2"},
			{"2013", "India", "3", "4"},
		},
	)
	require.NoError(t, err)

	frames, err := Derive(raw)
	require.NoError(t, err)

	var expected []string
	for i := 0; i < frames.Transposed.Len(); i++ {
		if frames.Transposed.IsComplete(i) {
			expected = append(expected, frames.Transposed.Value(i, table.ColumnTime).String())
		}
	}
	var got []string
	for i := 0; i < frames.Cleaned.Len(); i++ {
		assert.True(t, frames.Cleaned.IsComplete(i))
		got = append(got, frames.Cleaned.Value(i, table.ColumnTime).String())
	}
	assert.Equal(t, []string{"2010", "2013"}, got)
	assert.Equal(t, expected, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeDataAccess, errors.GetCode(err))
}

func TestLoadSchemaErrorListsAllColumns(t *testing.T) {
	path := writeDataset(t, "Country Name,Year,Other\n2010,Australia,1\n")

	_, err := NewLoader(nil).Load(context.Background(), path, indicatorX)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeSchemaInvalid))
	assert.Contains(t, err.Error(), `"Time"`)
	assert.Contains(t, err.Error(), indicatorX)
	assert.NotContains(t, err.Error(), `"Country Name"`)
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(nil).Load(ctx, "Dataset.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilterCountriesAndYears(t *testing.T) {
	out := Filter(grid(t), Selection{Countries: []string{"Australia", "China"}, Years: Years(2015, 2018)})

	require.Equal(t, 8, out.Len())
	for i := 0; i < out.Len(); i++ {
		c := out.Value(i, table.ColumnCountryName).String()
		assert.Contains(t, []string{"Australia", "China"}, c)
		y, ok := YearOf(out, i)
		require.True(t, ok)
		assert.True(t, y >= 2015 && y <= 2018)
	}
	// original order is kept
	assert.Equal(t, "Australia", out.Value(0, table.ColumnCountryName).String())
	assert.Equal(t, "2015", out.Value(0, table.ColumnTime).String())
	assert.Equal(t, "China", out.Value(7, table.ColumnCountryName).String())
	assert.Equal(t, "2018", out.Value(7, table.ColumnTime).String())
}

func TestFilterPredicateOrderDoesNotMatter(t *testing.T) {
	tbl := grid(t)
	countries := Selection{Countries: []string{"India", "Poland", "Atlantis"}}
	years := Selection{Years: Years(2012, 2014)}

	a := Filter(Filter(tbl, countries), years)
	b := Filter(Filter(tbl, years), countries)
	both := Filter(tbl, Selection{Countries: countries.Countries, Years: years.Years})

	require.Equal(t, 6, both.Len())
	for _, other := range []*table.Table{a, b} {
		require.Equal(t, both.Len(), other.Len())
		for i := 0; i < both.Len(); i++ {
			assert.Equal(t, both.Row(i), other.Row(i))
		}
	}
}

func TestFilterEdgeCases(t *testing.T) {
	tbl := grid(t)

	assert.Same(t, tbl, Filter(tbl, Selection{}))
	assert.Equal(t, 0, Filter(tbl, Selection{Countries: []string{"australia"}}).Len(), "country match is exact")
	assert.Equal(t, 0, Filter(tbl, Selection{Years: Years(1990, 1999)}).Len())
	assert.Equal(t, 10, Filter(tbl, Selection{Years: Year(2019)}).Len())

	withText, err := table.FromStrings(
		[]string{table.ColumnCountryName, table.ColumnTime},
		[][]string{{"India", "2019"}, {"India", "Last Updated"}, {"India", "2019.0"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, Filter(withText, Selection{Years: Year(2019)}).Len())
}

func TestPivot(t *testing.T) {
	tbl, err := table.FromStrings(
		[]string{table.ColumnCountryName, table.ColumnTime, "V"},
		[][]string{
			{"Malaysia", "2011", "3"},
			{"China", "2010", "1"},
			{"Malaysia", "2010", "x"},
			{"China", "9", "2"},
		},
	)
	require.NoError(t, err)

	wide, err := Pivot(tbl, table.ColumnTime, table.ColumnCountryName, "V", coercer.NewNumericCoercer(coercer.DefaultCoercionConfig()))
	require.NoError(t, err)

	assert.Equal(t, []string{"9", "2010", "2011"}, wide.RowKeys, "numeric index sorts numerically")
	assert.Equal(t, []string{"China", "Malaysia"}, wide.ColumnKeys)
	v, ok := wide.Cell("2010", "China").AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.True(t, wide.Cell("2010", "Malaysia").IsMissing(), "unparseable value is missing")
	assert.True(t, wide.Cell("2011", "China").IsMissing(), "absent pair is missing")
	assert.False(t, wide.Empty())
}

func TestPivotRejectsDuplicates(t *testing.T) {
	tbl, err := table.FromStrings(
		[]string{table.ColumnCountryName, table.ColumnTime, "V"},
		[][]string{{"China", "2010", "1"}, {"China", "2010", "2"}},
	)
	require.NoError(t, err)

	_, err = Pivot(tbl, table.ColumnTime, table.ColumnCountryName, "V", nil)
	assert.True(t, errors.HasCode(err, errors.CodeDuplicateKey))

	_, err = Pivot(tbl, table.ColumnTime, table.ColumnCountryName, "W", nil)
	assert.True(t, errors.HasCode(err, errors.CodeSchemaInvalid))
}
