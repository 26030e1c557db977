package output

import "strings"

// Output formats.
const (
	FormatTSV   = "tsv"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatXLSX  = "xlsx"
)

// Columns is the exported field set, in order. Every tabular writer
// (sheet, CSV, TSV) uses it; keep it the single source of truth.
var Columns = []string{
	"domain",
	"rank",
	"tax_id",
	"name",
	"reads_clade",
	"relative_abundance",
	"lineage",
}

// TSVHeader is Columns joined for text/TSV outputs.
var TSVHeader = strings.Join(Columns, "\t")
