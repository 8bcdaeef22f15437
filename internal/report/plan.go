package report

import (
	"github.com/samber/lo"

	"wbreport/domain/indicator"
	"wbreport/internal/dataset"
	"wbreport/internal/render"
)

// Plan is one chart of the report: which rows to select from the transposed
// table, how to shape them, and how to draw them.
type Plan struct {
	Indicator      indicator.Key     `json:"indicator"`
	Selection      dataset.Selection `json:"selection"`
	DropIncomplete bool              `json:"drop_incomplete,omitempty"`
	Pivot          bool              `json:"pivot,omitempty"`
	Chart          render.ChartSpec  `json:"chart"`
}

// DescribedIndicator is the indicator whose statistics head the report
const DescribedIndicator = indicator.ClaimsOnCentralGov

// DefaultPlans returns the six charts of the standard report, in output order
func DefaultPlans() []Plan {
	claims := indicator.MustLookup(indicator.ClaimsOnCentralGov)
	stocksGDP := indicator.MustLookup(indicator.StocksTradedPctGDP)
	wpi := indicator.MustLookup(indicator.WholesalePriceIndex)
	interest := indicator.MustLookup(indicator.RealInterestRate)
	stocksUSD := indicator.MustLookup(indicator.StocksTradedUSD)
	branches := indicator.MustLookup(indicator.CommercialBankBranches)

	claimsCountries := []string{"Australia", "Canada", "China", "Germany", "India", "Malaysia"}
	interestCountries := []string{"China", "India", "Indonesia", "Malaysia", "United States"}
	stocksCountries := lo.Uniq([]string{
		"China", "India", "Indonesia", "Malaysia", "Afghanistan",
		"Australia", "Canada", "Germany", "Indonesia", "Poland",
	})

	return []Plan{
		{
			Indicator: claims.Key,
			Selection: dataset.Selection{Countries: claimsCountries, Years: dataset.Years(2010, 2020)},
			Chart: render.ChartSpec{
				Kind:      render.KindLine,
				Name:      "01_claims_on_central_government",
				Title:     "Claims on central government (annual growth as % of broad money)",
				XLabel:    "Year",
				YLabel:    claims.Short,
				Countries: claimsCountries,
			},
		},
		{
			Indicator: stocksGDP.Key,
			Selection: dataset.Selection{Countries: []string{"Malaysia", "United States", "China"}, Years: dataset.Years(2010, 2019)},
			Pivot:     true,
			Chart: render.ChartSpec{
				Kind:        render.KindStackedBar,
				Name:        "02_stocks_traded_pct_gdp",
				Title:       "Stock Trades of Three Countries Over Years",
				XLabel:      "Year",
				YLabel:      stocksGDP.Short,
				LegendTitle: "Country",
			},
		},
		{
			Indicator:      wpi.Key,
			Selection:      dataset.Selection{Countries: []string{"India"}},
			DropIncomplete: true,
			Chart: render.ChartSpec{
				Kind:  render.KindPieByYear,
				Name:  "03_wholesale_price_index_india",
				Title: "Wholesale price index (INDIA)",
			},
		},
		{
			Indicator: interest.Key,
			Selection: dataset.Selection{Countries: interestCountries, Years: dataset.Years(2000, 2015)},
			Chart: render.ChartSpec{
				Kind:      render.KindLine,
				Name:      "04_real_interest_rate",
				Title:     "Real interest rate (%) of different countries",
				XLabel:    "Year",
				YLabel:    interest.Short,
				Countries: interestCountries,
			},
		},
		{
			Indicator:      stocksUSD.Key,
			Selection:      dataset.Selection{Countries: stocksCountries, Years: dataset.Year(2019)},
			DropIncomplete: true,
			Chart: render.ChartSpec{
				Kind:    render.KindBar,
				Name:    "05_stocks_traded_usd_2019",
				Title:   "Stocks traded, total value (current US$) in 2019",
				XLabel:  "Country",
				YLabel:  stocksUSD.Short,
				Palette: render.PaletteViridis,
			},
		},
		{
			Indicator:      branches.Key,
			Selection:      dataset.Selection{Years: dataset.Year(2019)},
			DropIncomplete: true,
			Chart: render.ChartSpec{
				Kind:  render.KindPieByCountry,
				Name:  "06_commercial_bank_branches_2019",
				Title: "Commercial bank branches (per 100,000 adults)",
			},
		},
	}
}

// RequiredColumns lists the indicator headers the plans and the described
// indicator read, without duplicates.
func RequiredColumns(plans []Plan) []string {
	cols := []string{indicator.MustLookup(DescribedIndicator).Column()}
	for _, p := range plans {
		if ind, ok := indicator.Lookup(p.Indicator); ok {
			cols = append(cols, ind.Column())
		}
	}
	return lo.Uniq(cols)
}
