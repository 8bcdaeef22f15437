package coercer

import (
	"math"
	"strconv"
	"strings"

	"wbreport/domain/table"
)

// NumericCoercer turns cells into numbers; anything unparseable becomes missing
type NumericCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the parsing rules
type CoercionConfig struct {
	// Lenient also accepts thousands separators, currency symbols, percent
	// signs and accounting negatives such as "(1,234)".
	Lenient bool `json:"lenient"`
}

// DefaultCoercionConfig returns strict parsing
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{Lenient: false}
}

// NewNumericCoercer creates a coercer with the given config
func NewNumericCoercer(config CoercionConfig) *NumericCoercer {
	return &NumericCoercer{config: config}
}

// CoerceValue converts one cell. Numeric and missing cells pass through unchanged.
func (c *NumericCoercer) CoerceValue(v table.Value) table.Value {
	if v.IsMissing() {
		return table.NewMissingValue()
	}
	if v.IsNumeric() {
		return v
	}
	if f, ok := c.ParseNumber(v.String()); ok {
		return table.NewNumericValue(f)
	}
	return table.NewMissingValue()
}

// CoerceValues converts a column of cells
func (c *NumericCoercer) CoerceValues(values []table.Value) []table.Value {
	out := make([]table.Value, len(values))
	for i, v := range values {
		out[i] = c.CoerceValue(v)
	}
	return out
}

// CoerceColumn returns a table whose named column is numeric or missing in every row
func (c *NumericCoercer) CoerceColumn(t *table.Table, column string) (*table.Table, error) {
	values, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	return t.WithColumn(column, c.CoerceValues(values))
}

// CoerceColumns applies CoerceColumn to each column in turn
func (c *NumericCoercer) CoerceColumns(t *table.Table, columns ...string) (*table.Table, error) {
	var err error
	for _, col := range columns {
		if t, err = c.CoerceColumn(t, col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ParseNumber parses s as a finite float64
func (c *NumericCoercer) ParseNumber(s string) (float64, bool) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, false
	}
	if c.config.Lenient {
		clean = normalizeLenient(clean)
	}
	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// normalizeLenient rewrites international number formats into a form ParseFloat accepts
func normalizeLenient(s string) string {
	// (123) -> -123
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		negative = true
	}

	for _, symbol := range []string{"USD", "EUR", "GBP", "JPY", "$", "€", "£", "¥", "%"} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.TrimSpace(s)

	hasComma := strings.Contains(s, ",")
	hasPeriod := strings.Contains(s, ".")
	hasSpace := strings.Contains(s, " ")

	switch {
	case hasComma && (hasPeriod || hasSpace):
		// 1.234,56 or 1 234,56: a short all-digit tail after the last comma is the decimal part
		tail := s[strings.LastIndex(s, ",")+1:]
		if len(tail) > 0 && len(tail) <= 2 && allDigits(tail) {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, " ", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
			s = strings.ReplaceAll(s, " ", "")
		}
	case hasComma:
		// 1,234 groups thousands; 12,5 is a decimal comma
		tail := s[strings.LastIndex(s, ",")+1:]
		if len(tail) == 3 && allDigits(tail) {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	default:
		s = strings.ReplaceAll(s, " ", "")
	}

	if negative {
		s = "-" + s
	}
	return s
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
