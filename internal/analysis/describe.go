package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"wbreport/adapters/coercer"
	"wbreport/domain/table"
)

// EstimatorNote documents the skewness and kurtosis conventions printed with every report
const EstimatorNote = "skewness: adjusted Fisher-Pearson coefficient G1 (bias-corrected); " +
	"kurtosis: bias-corrected sample excess kurtosis G2; std: sample (n-1); " +
	"quartiles: linear interpolation between closest ranks"

// Estimate is a statistic that may be undefined for the sample at hand
type Estimate struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

func defined(v float64) Estimate {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Estimate{}
	}
	return Estimate{Value: v, Defined: true}
}

// Summary is the describe bundle plus median, mode, skewness and kurtosis
type Summary struct {
	Column   string    `json:"column"`
	Count    int       `json:"count"`
	Missing  int       `json:"missing"`
	Mean     Estimate  `json:"mean"`
	Std      Estimate  `json:"std"`
	Min      Estimate  `json:"min"`
	Q25      Estimate  `json:"q25"`
	Q50      Estimate  `json:"q50"`
	Q75      Estimate  `json:"q75"`
	Max      Estimate  `json:"max"`
	Median   Estimate  `json:"median"`
	Modes    []float64 `json:"modes"`
	Skewness Estimate  `json:"skewness"`
	Kurtosis Estimate  `json:"kurtosis"`
}

// Describe computes the summary of the numeric cells; missing and non-numeric cells are skipped
func Describe(values []table.Value) Summary {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := v.AsFloat64(); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			data = append(data, f)
		}
	}

	s := Summary{Count: len(data), Missing: len(values) - len(data), Modes: []float64{}}
	if len(data) == 0 {
		return s
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	mean, _ := stats.Mean(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)

	s.Mean = defined(mean)
	s.Min = defined(min)
	s.Max = defined(max)
	s.Median = defined(median)
	s.Q25 = defined(quantile(sorted, 0.25))
	s.Q50 = defined(quantile(sorted, 0.50))
	s.Q75 = defined(quantile(sorted, 0.75))
	s.Modes = modes(data, sorted)

	n := len(data)
	if n >= 2 {
		s.Std = defined(stat.StdDev(data, nil))
	}

	constant := sorted[0] == sorted[n-1]
	if n >= 3 {
		if constant {
			s.Skewness = defined(0)
		} else {
			s.Skewness = defined(stat.Skew(data, nil))
		}
	}
	if n >= 4 {
		if constant {
			s.Kurtosis = defined(0)
		} else {
			s.Kurtosis = defined(stat.ExKurtosis(data, nil))
		}
	}
	return s
}

// DescribeColumn coerces column to numbers and describes it
func DescribeColumn(t *table.Table, column string, c *coercer.NumericCoercer) (Summary, error) {
	values, err := t.Column(column)
	if err != nil {
		return Summary{}, err
	}
	if c == nil {
		c = coercer.NewNumericCoercer(coercer.DefaultCoercionConfig())
	}
	s := Describe(c.CoerceValues(values))
	s.Column = column
	return s, nil
}

// quantile uses linear interpolation between closest ranks on sorted data
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// modes returns every most frequent value in ascending order. When all values
// share one frequency, each distinct value is a mode.
func modes(data, sorted []float64) []float64 {
	m, err := stats.Mode(data)
	if err == nil && len(m) > 0 {
		out := append([]float64(nil), m...)
		sort.Float64s(out)
		return out
	}
	return lo.Uniq(sorted)
}
