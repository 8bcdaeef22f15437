package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbreport/domain/table"
	"wbreport/internal/errors"
)

func nums(vals ...float64) []table.Value {
	out := make([]table.Value, len(vals))
	for i, v := range vals {
		out[i] = table.NewNumericValue(v)
	}
	return out
}

func TestDescribeKnownSample(t *testing.T) {
	s := Describe(nums(2, 8, 0, 4, 1, 9, 9, 0))

	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 4.125, s.Mean.Value, 1e-12)
	assert.InDelta(t, 3.9798600118956085, s.Std.Value, 1e-12)
	assert.Equal(t, 0.0, s.Min.Value)
	assert.InDelta(t, 0.75, s.Q25.Value, 1e-12)
	assert.InDelta(t, 3.0, s.Q50.Value, 1e-12)
	assert.InDelta(t, 8.25, s.Q75.Value, 1e-12)
	assert.Equal(t, 9.0, s.Max.Value)
	assert.InDelta(t, 3.0, s.Median.Value, 1e-12)
	assert.Equal(t, []float64{0, 9}, s.Modes)
	assert.InDelta(t, 0.3305821804079749, s.Skewness.Value, 1e-9)
	assert.InDelta(t, -2.098602258096086, s.Kurtosis.Value, 1e-9)
	assert.True(t, s.Skewness.Defined)
	assert.True(t, s.Kurtosis.Defined)
}

func TestDescribeSkewedSample(t *testing.T) {
	s := Describe(nums(1, 2, 3, 4, 10))

	assert.InDelta(t, 4.0, s.Mean.Value, 1e-12)
	assert.InDelta(t, 1.697056274847714, s.Skewness.Value, 1e-9)
	assert.InDelta(t, 3.152, s.Kurtosis.Value, 1e-9)
	assert.Equal(t, []float64{1, 2, 3, 4, 10}, s.Modes, "all-unique values are all modes")
}

func TestDescribeSkipsMissing(t *testing.T) {
	values := append(nums(1, 2, 2), table.NewMissingValue(), table.NewStringValue("abc"))
	s := Describe(values)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Missing)
	assert.Equal(t, []float64{2}, s.Modes)
	assert.True(t, s.Skewness.Defined)
	assert.False(t, s.Kurtosis.Defined, "kurtosis needs four observations")
}

func TestDescribeAllMissingIsUndefined(t *testing.T) {
	s := Describe([]table.Value{table.NewMissingValue(), table.NewMissingValue()})

	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 2, s.Missing)
	for name, e := range map[string]Estimate{
		"mean": s.Mean, "std": s.Std, "min": s.Min, "q25": s.Q25, "q50": s.Q50,
		"q75": s.Q75, "max": s.Max, "median": s.Median, "skew": s.Skewness, "kurt": s.Kurtosis,
	} {
		assert.Falsef(t, e.Defined, "%s should be undefined", name)
	}
	assert.Empty(t, s.Modes)
}

func TestDescribeSmallAndConstantSamples(t *testing.T) {
	one := Describe(nums(5))
	assert.True(t, one.Mean.Defined)
	assert.False(t, one.Std.Defined, "std needs two observations")
	assert.Equal(t, []float64{5}, one.Modes)

	flat := Describe(nums(3, 3, 3, 3))
	assert.Equal(t, 0.0, flat.Std.Value)
	assert.True(t, flat.Skewness.Defined)
	assert.Equal(t, 0.0, flat.Skewness.Value)
	assert.Equal(t, 0.0, flat.Kurtosis.Value)
	assert.Equal(t, []float64{3}, flat.Modes)

	tied := Describe(nums(2, 1, 2, 1))
	assert.Equal(t, []float64{1, 2}, tied.Modes)
}

func TestDescribeColumnCoerces(t *testing.T) {
	tbl, err := table.FromStrings([]string{"X"}, [][]string{{"12.5"}, {"abc"}, {""}, {"7"}})
	require.NoError(t, err)

	s, err := DescribeColumn(tbl, "X", nil)
	require.NoError(t, err)
	assert.Equal(t, "X", s.Column)
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 9.75, s.Mean.Value, 1e-12)

	_, err = DescribeColumn(tbl, "Y", nil)
	assert.True(t, errors.HasCode(err, errors.CodeSchemaInvalid))
}
