package table

import (
	"strconv"
)

// Value represents a single typed cell. Missing is an explicit state, never a sentinel number.
type Value struct {
	Type       ValueType `json:"type"`
	StringVal  *string   `json:"string_val,omitempty"`
	NumericVal *float64  `json:"numeric_val,omitempty"`
}

// ValueType defines the storage type for values
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeMissing ValueType = "missing"
)

// NewStringValue creates a string value; the empty string is missing
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing}
}

// IsMissing returns true if the cell holds no usable value
func (v Value) IsMissing() bool {
	switch v.Type {
	case ValueTypeString:
		return v.StringVal == nil
	case ValueTypeNumeric:
		return v.NumericVal == nil
	default:
		return true
	}
}

// IsNumeric returns true if the value represents a valid number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric && v.NumericVal != nil
}

// IsString returns true if the value represents a valid string
func (v Value) IsString() bool {
	return v.Type == ValueTypeString && v.StringVal != nil
}

// AsFloat64 returns the numeric value and whether the cell was numeric
func (v Value) AsFloat64() (float64, bool) {
	if v.IsNumeric() {
		return *v.NumericVal, true
	}
	return 0, false
}

// String returns the display form of the value. Numbers use the shortest
// representation that round-trips, so "2010" stays "2010" after coercion.
func (v Value) String() string {
	switch {
	case v.IsString():
		return *v.StringVal
	case v.IsNumeric():
		return strconv.FormatFloat(*v.NumericVal, 'f', -1, 64)
	default:
		return "NaN"
	}
}

// Equal compares type and payload
func (v Value) Equal(o Value) bool {
	if v.IsMissing() || o.IsMissing() {
		return v.IsMissing() && o.IsMissing()
	}
	if v.Type != o.Type {
		return false
	}
	if v.IsNumeric() {
		return *v.NumericVal == *o.NumericVal
	}
	return *v.StringVal == *o.StringVal
}
