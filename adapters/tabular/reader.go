package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"wbreport/domain/table"
	"wbreport/internal"
	"wbreport/internal/errors"
)

// DefaultMissingTokens are the cell spellings read as missing, the same set pandas treats as NA
var DefaultMissingTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

const utf8BOM = "\ufeff"

// DataReader handles reading CSV and Excel files into a table
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	missing  map[string]bool
	logger   *internal.Logger
}

// NewDataReader creates a reader; the file type follows the extension, defaulting to CSV.
// extraMissing adds tokens such as the World Bank ".." to the default missing set.
func NewDataReader(filePath string, extraMissing ...string) *DataReader {
	fileType := "csv"
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xlsm":
		fileType = "xlsx"
	}
	missing := make(map[string]bool, len(DefaultMissingTokens)+len(extraMissing))
	for _, tok := range DefaultMissingTokens {
		missing[tok] = true
	}
	for _, tok := range extraMissing {
		missing[strings.TrimSpace(tok)] = true
	}
	return &DataReader{filePath: filePath, fileType: fileType, missing: missing, logger: internal.DefaultLogger}
}

// WithLogger replaces the package default logger
func (r *DataReader) WithLogger(l *internal.Logger) *DataReader {
	r.logger = l
	return r
}

// FileType returns "csv" or "xlsx"
func (r *DataReader) FileType() string {
	return r.fileType
}

// Read loads the file into a table. Every failure is a DATA_ACCESS error.
func (r *DataReader) Read() (*table.Table, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	info, err := os.Stat(r.filePath)
	if err != nil {
		return nil, errors.DataAccess(r.filePath, err)
	}
	if info.IsDir() {
		return nil, errors.DataAccess(r.filePath, fmt.Errorf("path is a directory"))
	}

	if r.fileType == "csv" {
		file, err := os.Open(r.filePath)
		if err != nil {
			return nil, errors.DataAccess(r.filePath, fmt.Errorf("failed to open CSV file: %w", err))
		}
		defer file.Close()
		return r.ReadCSV(file)
	}

	rows, err := r.readExcelRows()
	if err != nil {
		return nil, errors.DataAccess(r.filePath, err)
	}
	t, err := r.processRows(rows)
	if err != nil {
		return nil, errors.DataAccess(r.filePath, err)
	}
	return t, nil
}

// ReadCSV parses CSV content from src; Read uses it for .csv paths
func (r *DataReader) ReadCSV(src io.Reader) (*table.Table, error) {
	readStart := time.Now()
	rows, err := parseCSV(src)
	if err != nil {
		return nil, errors.DataAccess(r.filePath, err)
	}
	r.logger.Debug("[DataReader] CSV read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	t, err := r.processRows(rows)
	if err != nil {
		return nil, errors.DataAccess(r.filePath, err)
	}
	return t, nil
}

func parseCSV(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	// Short rows are padded later; long rows are rejected there too.
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

// readExcelRows reads the first sheet of the workbook
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	r.logger.Debug("[DataReader] Sheet %q read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// processRows converts raw string rows into a table: first row is the header
func (r *DataReader) processRows(rows [][]string) (*table.Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("no header row found")
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows below the header")
	}

	headers := dedupeHeaders(rows[0])
	data := make([][]table.Value, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		raw := rows[i]
		if len(raw) > len(headers) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", i+1, len(headers), len(raw))
		}
		row := make([]table.Value, len(headers))
		for j := range headers {
			if j >= len(raw) {
				row[j] = table.NewMissingValue()
				continue
			}
			row[j] = r.cell(raw[j])
		}
		data = append(data, row)
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(data))

	return table.New(headers, data)
}

func (r *DataReader) cell(raw string) table.Value {
	v := strings.TrimSpace(raw)
	if r.missing[v] {
		return table.NewMissingValue()
	}
	return table.NewStringValue(v)
}

// dedupeHeaders trims names, strips a UTF-8 BOM and suffixes repeats as "X.1", "X.2"
func dedupeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n+1)
		}
		seen[h] = 0
		headers[i] = h
	}
	return headers
}
