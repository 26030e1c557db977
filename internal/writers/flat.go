// internal/writers/flat.go
package writers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"kreport/internal/export"
	"kreport/internal/output"
	"kreport/internal/report"
)

func init() {
	RegisterUnit(output.FormatCSV, flatWriter(output.FormatCSV, output.WriteCSV))
	RegisterUnit(output.FormatTSV, flatWriter(output.FormatTSV, output.WriteTSV))
}

// flatWriter writes one file per section. A single-section unit (the
// all-species unit) gets <sample>_<unit>.<ext>; otherwise each section is
// <sample>_<unit>_<rank>.<ext>.
func flatWriter(ext string, write func(io.Writer, []report.Record, bool) error) UnitWriter {
	return func(dir, sample string, u export.Unit) ([]string, error) {
		var paths []string
		for _, s := range u.Sections {
			name := fmt.Sprintf("%s_%s.%s", sample, u.Name, ext)
			if u.Domain != "" {
				name = fmt.Sprintf("%s_%s_%s.%s", sample, u.Name, s.RankName, ext)
			}
			p := filepath.Join(dir, name)
			if err := writeFile(p, func(w io.Writer) error { return write(w, s.Records, true) }); err != nil {
				return paths, err
			}
			paths = append(paths, p)
		}
		return paths, nil
	}
}

func writeFile(path string, fill func(io.Writer) error) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fh)
	if err := fill(bw); err != nil {
		fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return fh.Close()
}
