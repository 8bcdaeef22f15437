package dataset

import (
	"context"

	"github.com/samber/lo"

	"wbreport/adapters/tabular"
	"wbreport/domain/table"
	"wbreport/internal"
	"wbreport/internal/errors"
)

// Frames holds the three tables derived from one dataset file
type Frames struct {
	// Raw is the file as read
	Raw *table.Table
	// Transposed is Raw with the Country Name and Time contents exchanged per row
	Transposed *table.Table
	// Cleaned is Transposed without the rows that have any missing cell
	Cleaned *table.Table
}

// Loader reads a dataset and derives the transposed and cleaned tables
type Loader struct {
	missingTokens []string
	logger        *internal.Logger
}

// NewLoader creates a loader; extraMissing is forwarded to the file reader
func NewLoader(logger *internal.Logger, extraMissing ...string) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{missingTokens: extraMissing, logger: logger}
}

// Load reads path and derives the three frames. required lists extra columns,
// typically indicator headers, that must be present besides Country Name and Time.
func (l *Loader) Load(ctx context.Context, path string, required ...string) (*Frames, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader := tabular.NewDataReader(path, l.missingTokens...).WithLogger(l.logger)
	raw, err := reader.Read()
	if err != nil {
		return nil, err
	}
	l.logger.Trace("[Loader] columns: %v", raw.Headers())

	if err := ValidateSchema(raw, required...); err != nil {
		return nil, errors.Wrapf(err, "dataset %q failed schema check", path)
	}

	frames, err := Derive(raw)
	if err != nil {
		return nil, err
	}

	l.logger.Info("[Loader] %s (%s): %d rows, %d columns, %d complete rows after cleaning",
		path, reader.FileType(), frames.Raw.Len(), frames.Raw.Width(), frames.Cleaned.Len())
	return frames, nil
}

// Derive builds the transposed and cleaned tables from an already-read table
func Derive(raw *table.Table) (*Frames, error) {
	transposed, err := raw.SwapValues(table.ColumnCountryName, table.ColumnTime)
	if err != nil {
		return nil, err
	}
	return &Frames{
		Raw:        raw,
		Transposed: transposed,
		Cleaned:    transposed.DropIncomplete(),
	}, nil
}

// ValidateSchema checks that Country Name, Time and every required column exist
// as exact headers, reporting all absent columns at once.
func ValidateSchema(t *table.Table, required ...string) error {
	want := lo.Uniq(append([]string{table.ColumnCountryName, table.ColumnTime}, required...))
	missing := lo.Filter(want, func(col string, _ int) bool {
		return !t.HasColumn(col)
	})
	if len(missing) > 0 {
		return errors.SchemaInvalid(missing...)
	}
	return nil
}
