package pds

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
)

// Parser opens PDS4 label/data pairs and exposes them as domain products.
// Implements ports.ProductParser.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the label at labelPath, locates its data file, and decodes the
// table into scalar columns plus, when the record declares a repeating group,
// one spectrum per record.
func (p *Parser) Parse(labelPath string) (*domain.Product, error) {
	lbl, err := readLabel(labelPath)
	if err != nil {
		return nil, err
	}

	tbl := lbl.FileArea.TableChar
	if tbl == nil {
		tbl = lbl.FileArea.TableBin
	}
	if tbl == nil {
		return nil, fmt.Errorf("label %s declares no table", labelPath)
	}
	rec := tbl.record()
	if rec == nil || rec.Length <= 0 {
		return nil, fmt.Errorf("label %s declares no usable record layout", labelPath)
	}

	dataPath, err := locateData(labelPath, lbl.FileArea.File.FileName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if tbl.Offset > 0 {
		if tbl.Offset > int64(len(data)) {
			return nil, fmt.Errorf("table offset %d beyond data file %s", tbl.Offset, dataPath)
		}
		data = data[tbl.Offset:]
	}

	n := tbl.Records
	if n <= 0 {
		n = len(data) / rec.Length
	}
	if n*rec.Length > len(data) {
		return nil, fmt.Errorf("data file %s holds %d bytes, label wants %d records of %d",
			dataPath, len(data), n, rec.Length)
	}

	fields := rec.fields()
	cols := make([]domain.TableColumn, len(fields))
	for i, f := range fields {
		cols[i] = domain.TableColumn{Name: f.Name, Values: make([]float64, 0, n)}
	}

	groups := rec.groups()
	var spectrumGroup *groupDef
	if len(groups) > 0 {
		names := make([]string, len(groups))
		for i, g := range groups {
			names[i] = g.Name
		}
		gi := domain.FindColumn(names, domain.SpectrumCandidates)
		if gi < 0 {
			gi = 0
		}
		spectrumGroup = &groups[gi]
	}

	var spectra [][]float64
	if spectrumGroup != nil {
		spectra = make([][]float64, 0, n)
	}

	for r := 0; r < n; r++ {
		row := data[r*rec.Length : (r+1)*rec.Length]
		for i, f := range fields {
			v, err := decodeField(row, f)
			if err != nil {
				return nil, fmt.Errorf("record %d of %s: %w", r, dataPath, err)
			}
			cols[i].Values = append(cols[i].Values, v)
		}
		if spectrumGroup != nil {
			spec, err := decodeGroup(row, *spectrumGroup)
			if err != nil {
				return nil, fmt.Errorf("record %d of %s: %w", r, dataPath, err)
			}
			spectra = append(spectra, spec)
		}
	}

	return &domain.Product{
		LabelPath: labelPath,
		DataPath:  dataPath,
		Columns:   cols,
		Spectra:   spectra,
	}, nil
}

// locateData resolves the table's data file next to the label. When the label
// names the file that name wins; otherwise the label's stem with a known data
// extension is tried.
func locateData(labelPath, fileName string) (string, error) {
	dir := filepath.Dir(labelPath)
	if fileName != "" {
		p := filepath.Join(dir, fileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	stem := strings.TrimSuffix(labelPath, filepath.Ext(labelPath))
	for _, ext := range []string{".dat", ".tab", ".DAT", ".TAB"} {
		if _, err := os.Stat(stem + ext); err == nil {
			return stem + ext, nil
		}
	}
	return "", fmt.Errorf("no data file found for label %s", labelPath)
}
