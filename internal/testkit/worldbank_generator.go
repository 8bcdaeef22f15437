package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"wbreport/domain/indicator"
	"wbreport/domain/table"
)

// WorldBankGeneratorConfig configures the synthetic indicator dataset
type WorldBankGeneratorConfig struct {
	Countries    []string `json:"countries"`
	FromYear     int      `json:"from_year"`
	ToYear       int      `json:"to_year"`
	MissingRate  float64  `json:"missing_rate"`  // share of indicator cells left blank
	MissingToken string   `json:"missing_token"` // written for blank cells, "" by default
	Seed         int64    `json:"seed"`
}

// DefaultWorldBankConfig covers every country and year range the standard report selects
func DefaultWorldBankConfig() WorldBankGeneratorConfig {
	return WorldBankGeneratorConfig{
		Countries: []string{
			"Australia", "Canada", "China", "Germany", "India",
			"Indonesia", "Malaysia", "Poland", "United States", "Afghanistan",
		},
		FromYear: 2000,
		ToYear:   2020,
		Seed:     42,
	}
}

// WorldBankGenerator produces indicator tables in the raw file layout, where the
// Country Name column holds years and the Time column holds country names.
type WorldBankGenerator struct {
	config WorldBankGeneratorConfig
	rng    *rand.Rand
}

// NewWorldBankGenerator creates a generator; equal seeds give equal output
func NewWorldBankGenerator(config WorldBankGeneratorConfig) *WorldBankGenerator {
	return &WorldBankGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Rows returns the header and the records, one per country and year
func (g *WorldBankGenerator) Rows() ([]string, [][]string) {
	inds := indicator.All()
	header := []string{table.ColumnCountryName, table.ColumnTime}
	for _, ind := range inds {
		header = append(header, ind.Column())
	}

	var records [][]string
	for ci, country := range g.config.Countries {
		for year := g.config.FromYear; year <= g.config.ToYear; year++ {
			rec := []string{strconv.Itoa(year), country}
			for _, ind := range inds {
				if g.config.MissingRate > 0 && g.rng.Float64() < g.config.MissingRate {
					rec = append(rec, g.config.MissingToken)
					continue
				}
				v := g.value(ind.Key, ci, year-g.config.FromYear)
				rec = append(rec, strconv.FormatFloat(v, 'f', 4, 64))
			}
			records = append(records, rec)
		}
	}
	return header, records
}

// Cells is the number of indicator cells Rows produces
func (g *WorldBankGenerator) Cells() int {
	years := g.config.ToYear - g.config.FromYear + 1
	if years < 0 {
		years = 0
	}
	return len(g.config.Countries) * years * len(indicator.All())
}

// WriteCSV writes the dataset to path
func (g *WorldBankGenerator) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, records := g.Rows()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Close()
}

// WriteXLSX writes the dataset to the first sheet of a workbook at path
func (g *WorldBankGenerator) WriteXLSX(path string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	header, records := g.Rows()
	for r, rec := range append([][]string{header}, records...) {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", r+1, err)
		}
	}
	return wb.SaveAs(path)
}

// value is a positive series with a per-country level, a trend and noise.
// Rates can dip below zero the way real interest rates do.
func (g *WorldBankGenerator) value(key indicator.Key, country, offset int) float64 {
	level := float64(country+1) * 10
	trend := float64(offset) * 0.5
	noise := g.rng.NormFloat64()
	switch key {
	case indicator.RealInterestRate:
		return 2 + math.Sin(float64(offset+country))*4 + noise
	case indicator.ClaimsOnCentralGov:
		return level/5 + noise*3
	case indicator.StocksTradedUSD:
		return (level + trend) * 1e9 * (1 + math.Abs(noise)/10)
	default:
		return level + trend + math.Abs(noise)
	}
}
