package domain

import "strings"

// Candidate column names, checked in priority order.
var (
	LatCandidates      = []string{"LAT", "LATITUDE"}
	LonCandidates      = []string{"LON", "LONGITUDE"}
	SpectrumCandidates = []string{"SPEC", "COUNT"}
)

// FindColumn returns the index of the first column whose name contains one
// of the candidate substrings, case-insensitive, candidates in priority
// order. Returns -1 when nothing matches; an absent column is a normal
// state, not an error.
func FindColumn(names []string, candidates []string) int {
	for _, cand := range candidates {
		cand = strings.ToUpper(cand)
		for i, n := range names {
			if strings.Contains(strings.ToUpper(n), cand) {
				return i
			}
		}
	}
	return -1
}

// Collapse folds per-sample spectra into one total spectrum by summing over
// the sample axis. Total integrated counts are preserved:
// sum(Collapse(s)) == sum(s). Ragged rows contribute up to their own length.
func Collapse(spectra [][]float64) []float64 {
	if len(spectra) == 0 {
		return nil
	}
	width := 0
	for _, row := range spectra {
		if len(row) > width {
			width = len(row)
		}
	}
	total := make([]float64, width)
	for _, row := range spectra {
		for ch, v := range row {
			total[ch] += v
		}
	}
	return total
}

// TableColumn is one scalar column of a parsed product table, with one value
// per record.
type TableColumn struct {
	Name   string
	Values []float64
}

// Product is the parsed view of one label/data pair: scalar columns plus,
// when the table declares a repeating group, one spectrum per record.
type Product struct {
	LabelPath string
	DataPath  string
	Columns   []TableColumn
	// Spectra holds one counts array per record; nil when the product has
	// no per-record spectrum group.
	Spectra [][]float64
}

// ColumnNames lists the scalar column names in table order.
func (p *Product) ColumnNames() []string {
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the values of the first column matching the candidates, or
// nil when no column matches.
func (p *Product) Column(candidates []string) []float64 {
	i := FindColumn(p.ColumnNames(), candidates)
	if i < 0 {
		return nil
	}
	return p.Columns[i].Values
}

// Latitudes returns the geolocation latitude column, or nil.
func (p *Product) Latitudes() []float64 { return p.Column(LatCandidates) }

// Longitudes returns the geolocation longitude column, or nil.
func (p *Product) Longitudes() []float64 { return p.Column(LonCandidates) }

// Records reports how many table records the product holds.
func (p *Product) Records() int {
	if p.Spectra != nil {
		return len(p.Spectra)
	}
	if len(p.Columns) > 0 {
		return len(p.Columns[0].Values)
	}
	return 0
}

// TotalSpectrum returns the product's spectrum collapsed across records.
// Products without a spectrum group fall back to the first scalar column
// read as a single 1D spectrum, matching how legacy single-spectrum tables
// are laid out.
func (p *Product) TotalSpectrum() []float64 {
	if p.Spectra != nil {
		return Collapse(p.Spectra)
	}
	if len(p.Columns) > 0 {
		return p.Columns[0].Values
	}
	return nil
}

// SpectrumAt returns the spectrum for a single record. For products without
// per-record spectra the whole 1D spectrum is returned regardless of index.
func (p *Product) SpectrumAt(i int) []float64 {
	if p.Spectra == nil {
		if len(p.Columns) > 0 {
			return p.Columns[0].Values
		}
		return nil
	}
	if i < 0 || i >= len(p.Spectra) {
		return nil
	}
	return p.Spectra[i]
}
