package report

import (
	"fmt"

	"github.com/biter777/countries"
	"github.com/samber/lo"

	"wbreport/domain/table"
)

// CountryCode returns the ISO 3166-1 alpha-3 code for a country name, or "" if
// the name is not a recognised country.
func CountryCode(name string) string {
	code := countries.ByName(name)
	if !code.IsValid() {
		return ""
	}
	return code.Alpha3()
}

// CheckCountries returns a warning for every country a plan selects that is not a
// recognised country name or has no rows in t. Typos in a selection otherwise
// surface only as an empty chart.
func CheckCountries(t *table.Table, plans []Plan) []string {
	present := make(map[string]struct{})
	for i := 0; i < t.Len(); i++ {
		if v := t.Value(i, table.ColumnCountryName); !v.IsMissing() {
			present[v.String()] = struct{}{}
		}
	}

	var names []string
	for _, p := range plans {
		names = append(names, p.Selection.Countries...)
	}

	var warnings []string
	for _, name := range lo.Uniq(names) {
		if CountryCode(name) == "" {
			warnings = append(warnings, fmt.Sprintf("%q is not a recognised country name", name))
		}
		if _, ok := present[name]; !ok {
			warnings = append(warnings, fmt.Sprintf("%q has no rows in the dataset", name))
		}
	}
	return warnings
}
