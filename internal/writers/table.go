// internal/writers/table.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"kreport/internal/output"
	"kreport/internal/report"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed))
}

// TableFormats are the formats WriteTable accepts.
var TableFormats = []string{output.FormatTSV, output.FormatCSV, output.FormatJSON, output.FormatJSONL}

// WriteTable writes recs to w in format. header applies to TSV and CSV.
func WriteTable(w io.Writer, format string, header bool, recs []report.Record) error {
	switch format {
	case output.FormatTSV:
		return output.WriteTSV(w, recs, header)
	case output.FormatCSV:
		return output.WriteCSV(w, recs, header)
	case output.FormatJSON:
		return output.WriteJSON(w, recs)
	case output.FormatJSONL:
		return output.WriteJSONL(w, recs)
	default:
		return fmt.Errorf("unsupported output %q", format)
	}
}
