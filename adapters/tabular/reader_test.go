package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wbreport/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "Dataset.csv", "\ufeffCountry Name,Time,X [A.B]\n2010,Australia,5\n2011,Australia,NA\n2012,Australia,..\n")

	tbl, err := NewDataReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"Country Name", "Time", "X [A.B]"}, tbl.Headers())
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, "Australia", tbl.Value(0, "Time").String())
	assert.True(t, tbl.Value(1, "X [A.B]").IsMissing(), "NA is a default missing token")
	assert.True(t, tbl.Value(2, "X [A.B]").IsString(), ".. stays a string unless configured")
}

func TestReadCSVExtraMissingTokens(t *testing.T) {
	path := writeFile(t, "d.csv", "Country Name,Time,X\n2010,China,..\n")

	tbl, err := NewDataReader(path, "..").Read()
	require.NoError(t, err)
	assert.True(t, tbl.Value(0, "X").IsMissing())
}

func TestReadCSVPadsShortRowsAndRejectsLongRows(t *testing.T) {
	path := writeFile(t, "short.csv", "a,b,c\n1,2\n\nLast Updated: 10/26/2023\n")
	tbl, err := NewDataReader(path).Read()
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	assert.True(t, tbl.Value(0, "c").IsMissing())
	assert.Equal(t, "Last Updated: 10/26/2023", tbl.Value(1, "a").String())

	path = writeFile(t, "long.csv", "a,b\n1,2,3\n")
	_, err = NewDataReader(path).Read()
	assert.True(t, errors.HasCode(err, errors.CodeDataAccess))
}

func TestReadFailuresAreDataAccessErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") }},
		{"directory", func(t *testing.T) string { return t.TempDir() }},
		{"empty file", func(t *testing.T) string { return writeFile(t, "empty.csv", "") }},
		{"header only", func(t *testing.T) string {
			return writeFile(t, "header.csv", "Country Name,Time,\"Real interest rate (%) [FR.INR.RINR]\"\n")
		}},
		{"bad quoting", func(t *testing.T) string { return writeFile(t, "bad.csv", "a,b\n\"unterminated,2\n") }},
		{"not a workbook", func(t *testing.T) string { return writeFile(t, "fake.xlsx", "plain text") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataReader(tt.path(t)).Read()
			require.Error(t, err)
			assert.Equal(t, errors.CodeDataAccess, errors.GetCode(err))
		})
	}
}

func TestReadCSVWithoutDataRows(t *testing.T) {
	_, err := NewDataReader("inline.csv").ReadCSV(strings.NewReader("Country Name,Time\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeDataAccess))
	assert.Contains(t, err.Error(), "no data rows")
}

func TestDuplicateHeadersAreSuffixed(t *testing.T) {
	tbl, err := NewDataReader("inline.csv").ReadCSV(strings.NewReader("X,X,X\n1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "X.1", "X.2"}, tbl.Headers())
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Country Name", "Time", "X"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"2019", "India", 4.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2020", "India"}))
	path := filepath.Join(t.TempDir(), "Dataset.xlsx")
	require.NoError(t, f.SaveAs(path))

	reader := NewDataReader(path)
	assert.Equal(t, "xlsx", reader.FileType())
	tbl, err := reader.Read()
	require.NoError(t, err)

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "India", tbl.Value(0, "Time").String())
	assert.Equal(t, "4.5", tbl.Value(0, "X").String())
	assert.True(t, tbl.Value(1, "X").IsMissing())
}
