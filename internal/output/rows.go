// internal/output/rows.go
package output

import (
	"strconv"
	"strings"

	"kreport/internal/report"
)

// FormatAbundance renders a relative abundance with the shortest exact form.
func FormatAbundance(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fields returns r's values in Columns order.
func Fields(r report.Record) []string {
	return []string{
		r.Domain,
		r.Rank,
		strconv.FormatUint(r.TaxID, 10),
		r.Name,
		strconv.FormatUint(r.ReadsClade, 10),
		FormatAbundance(r.RelativeAbundance),
		r.Lineage,
	}
}

// FormatRowTSV returns one TSV row (no trailing newline).
func FormatRowTSV(r report.Record) string {
	return strings.Join(Fields(r), "\t")
}
