// internal/output/text.go
package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"kreport/internal/report"
)

// WriteTSV prints one line per record, optionally preceded by TSVHeader.
func WriteTSV(w io.Writer, list []report.Record, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes RFC 4180 CSV with the Columns header.
func WriteCSV(w io.Writer, list []report.Record, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(Columns); err != nil {
			return err
		}
	}
	for _, r := range list {
		if err := cw.Write(Fields(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
