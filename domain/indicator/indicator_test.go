package indicator

import (
	"testing"
)

func TestColumnHeaders(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{ClaimsOnCentralGov, "Claims on central government (annual growth as % of broad money) [FM.AST.CGOV.ZG.M3]"},
		{StocksTradedPctGDP, "Stocks traded, total value (% of GDP) [CM.MKT.TRAD.GD.ZS]"},
		{WholesalePriceIndex, "Wholesale price index (2010 = 100) [FP.WPI.TOTL]"},
		{RealInterestRate, "Real interest rate (%) [FR.INR.RINR]"},
		{StocksTradedUSD, "Stocks traded, total value (current US$) [CM.MKT.TRAD.CD]"},
		{CommercialBankBranches, "Commercial bank branches (per 100,000 adults) [FB.CBK.BRCH.P5]"},
	}

	for _, tt := range tests {
		if got := MustLookup(tt.key).Column(); got != tt.expected {
			t.Errorf("Column(%s) = %q, expected %q", tt.key, got, tt.expected)
		}
	}
}

func TestParse(t *testing.T) {
	if ind, ok := Parse("fr.inr.rinr"); !ok || ind.Key != RealInterestRate {
		t.Errorf("Expected code lookup to be case-insensitive, got %v %v", ind.Key, ok)
	}
	if ind, ok := Parse("Wholesale price index (2010 = 100) [FP.WPI.TOTL]"); !ok || ind.Key != WholesalePriceIndex {
		t.Errorf("Expected full header lookup to succeed, got %v %v", ind.Key, ok)
	}
	if _, ok := Parse("NY.GDP.MKTP.CD"); ok {
		t.Error("Expected unknown code to fail")
	}
	if _, ok := Parse("Real rates [FR.INR.RINR]"); ok {
		t.Error("Expected header with a foreign label to fail")
	}
}

func TestSplitColumn(t *testing.T) {
	label, code, ok := SplitColumn("Real interest rate (%) [FR.INR.RINR]")
	if !ok || label != "Real interest rate (%)" || code != "FR.INR.RINR" {
		t.Errorf("unexpected split: %q %q %v", label, code, ok)
	}
	if _, _, ok := SplitColumn("Country Name"); ok {
		t.Error("Expected plain header not to split")
	}
	if _, _, ok := SplitColumn("Broken []"); ok {
		t.Error("Expected empty code not to split")
	}
}

func TestAllSorted(t *testing.T) {
	all := All()
	if len(all) != 6 {
		t.Fatalf("Expected 6 indicators, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Errorf("indicators not sorted at %d: %s >= %s", i, all[i-1].Key, all[i].Key)
		}
	}
}
