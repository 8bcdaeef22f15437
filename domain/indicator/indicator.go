package indicator

import (
	"fmt"
	"sort"
	"strings"
)

// Key identifies a recognized World Bank indicator by its short code
type Key string

// Recognized indicators. The column header of each one is Label + " [" + Code + "]".
const (
	ClaimsOnCentralGov     Key = "FM.AST.CGOV.ZG.M3"
	StocksTradedPctGDP     Key = "CM.MKT.TRAD.GD.ZS"
	WholesalePriceIndex    Key = "FP.WPI.TOTL"
	RealInterestRate       Key = "FR.INR.RINR"
	StocksTradedUSD        Key = "CM.MKT.TRAD.CD"
	CommercialBankBranches Key = "FB.CBK.BRCH.P5"
)

// Indicator maps a key to the labels used for column lookup and display
type Indicator struct {
	Key   Key
	Label string // human part of the column header
	Short string // axis label
}

var registry = map[Key]Indicator{
	ClaimsOnCentralGov: {
		Key:   ClaimsOnCentralGov,
		Label: "Claims on central government (annual growth as % of broad money)",
		Short: "Claims on central government",
	},
	StocksTradedPctGDP: {
		Key:   StocksTradedPctGDP,
		Label: "Stocks traded, total value (% of GDP)",
		Short: "Stocks traded (% of GDP)",
	},
	WholesalePriceIndex: {
		Key:   WholesalePriceIndex,
		Label: "Wholesale price index (2010 = 100)",
		Short: "Wholesale price index",
	},
	RealInterestRate: {
		Key:   RealInterestRate,
		Label: "Real interest rate (%)",
		Short: "Real interest rate (%)",
	},
	StocksTradedUSD: {
		Key:   StocksTradedUSD,
		Label: "Stocks traded, total value (current US$)",
		Short: "Stocks traded, total value (current US$)",
	},
	CommercialBankBranches: {
		Key:   CommercialBankBranches,
		Label: "Commercial bank branches (per 100,000 adults)",
		Short: "Commercial bank branches",
	},
}

// Column returns the exact header string of the indicator
func (i Indicator) Column() string {
	return fmt.Sprintf("%s [%s]", i.Label, i.Key)
}

// Lookup returns the indicator registered under key
func Lookup(key Key) (Indicator, bool) {
	ind, ok := registry[key]
	return ind, ok
}

// MustLookup is Lookup for the package constants
func MustLookup(key Key) Indicator {
	ind, ok := registry[key]
	if !ok {
		panic(fmt.Sprintf("indicator: unknown key %q", key))
	}
	return ind
}

// Parse accepts a bare code (case-insensitive) or a full column header.
// A header must carry the registered label for its code.
func Parse(s string) (Indicator, bool) {
	s = strings.TrimSpace(s)
	if label, code, ok := SplitColumn(s); ok {
		ind, found := registry[Key(code)]
		return ind, found && ind.Label == label
	}
	for _, ind := range registry {
		if strings.EqualFold(string(ind.Key), s) {
			return ind, true
		}
	}
	return Indicator{}, false
}

// All returns every registered indicator ordered by key
func All() []Indicator {
	out := make([]Indicator, 0, len(registry))
	for _, ind := range registry {
		out = append(out, ind)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key < out[b].Key })
	return out
}

// SplitColumn splits a "<label> [<code>]" header; ok is false for other headers
func SplitColumn(header string) (label string, code string, ok bool) {
	open := strings.LastIndex(header, " [")
	if open < 0 || !strings.HasSuffix(header, "]") {
		return "", "", false
	}
	code = header[open+2 : len(header)-1]
	if code == "" {
		return "", "", false
	}
	return header[:open], code, true
}
