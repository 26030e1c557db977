// internal/writers/xlsx.go
package writers

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"kreport/internal/export"
	"kreport/internal/output"
)

func init() { RegisterUnit(output.FormatXLSX, writeWorkbook) }

// writeWorkbook writes <sample>_<unit>.xlsx with one sheet per section,
// named after the section's rank.
func writeWorkbook(dir, sample string, u export.Unit) ([]string, error) {
	if len(u.Sections) == 0 {
		return nil, nil
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range u.Sections {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.RankName); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.RankName); err != nil {
			return nil, err
		}
		sw, err := f.NewStreamWriter(s.RankName)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow("A1", toCells(output.Columns)); err != nil {
			return nil, err
		}
		for j, r := range s.Records {
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			row := []any{r.Domain, r.Rank, r.TaxID, r.Name, r.ReadsClade, r.RelativeAbundance, r.Lineage}
			if err := sw.SetRow(cell, row); err != nil {
				return nil, err
			}
		}
		if err := sw.Flush(); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	p := filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", sample, u.Name))
	if err := f.SaveAs(p); err != nil {
		return nil, fmt.Errorf("write %s: %w", p, err)
	}
	return []string{p}, nil
}

func toCells(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
