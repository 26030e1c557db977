// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"kreport/internal/logging"
	"kreport/internal/output"
)

// Common holds flags shared by every command.
type Common struct {
	TablesFile  string
	MetricsFile string
	LogFormat   string
	Verbose     bool
	Quiet       bool
}

// ExportOptions drives the export command.
type ExportOptions struct {
	Common

	Report string
	Sample string
	OutDir string

	Format   string // xlsx | csv | tsv
	Parallel int
	SQLite   string
}

// TableOptions drives the table command.
type TableOptions struct {
	Common

	Report string
	Domain string
	Rank   string
	Output string // tsv | csv | json | jsonl
	Header bool   // true unless --no-header
}

// RegisterCommon wires shared flags onto fs (persistent flags of the root).
func RegisterCommon(fs *pflag.FlagSet, c *Common) {
	fs.StringVar(&c.TablesFile, "tables", "", "YAML file overriding domain keywords and rank names")
	fs.StringVar(&c.MetricsFile, "metrics-file", "", "write run counters to this file (Prometheus text format)")
	fs.StringVar(&c.LogFormat, "log-format", logging.FormatConsole, "log encoding: console | json")
	fs.BoolVarP(&c.Verbose, "verbose", "V", false, "debug logging, including every skipped line")
	fs.BoolVarP(&c.Quiet, "quiet", "q", false, "only log warnings and errors")
}

// RegisterExport wires export flags onto fs.
func RegisterExport(fs *pflag.FlagSet, o *ExportOptions) {
	fs.StringVarP(&o.Format, "format", "f", output.FormatXLSX, "per-domain output: xlsx | csv | tsv")
	fs.IntVarP(&o.Parallel, "parallel", "j", 0, "max files written concurrently (0 = one per domain)")
	fs.StringVar(&o.SQLite, "sqlite", "", "also append all records to this SQLite database")
}

// RegisterTable wires table flags onto fs and returns the "no-header" bool
// the caller turns into Header after parsing.
func RegisterTable(fs *pflag.FlagSet, o *TableOptions) *bool {
	fs.StringVarP(&o.Domain, "domain", "d", "", "keep only this domain (e.g. Bacteria, unclassified)")
	fs.StringVarP(&o.Rank, "rank", "r", "", "keep only this rank code (e.g. S, G)")
	fs.StringVarP(&o.Output, "output", "o", output.FormatTSV, "output: tsv | csv | json | jsonl")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in tsv/csv")
	return &noHeader
}

// ValidateCommon applies invariants shared by all commands.
func ValidateCommon(c *Common) error {
	switch c.LogFormat {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid --log-format %q", c.LogFormat)
	}
	return nil
}

// ValidateExport checks export options after positionals are assigned.
func ValidateExport(o *ExportOptions) error {
	if err := ValidateCommon(&o.Common); err != nil {
		return err
	}
	if o.Report == "" {
		return errors.New("report file is required")
	}
	if strings.TrimSpace(o.Sample) == "" {
		return errors.New("sample name is required")
	}
	if strings.ContainsAny(o.Sample, `/\`) {
		return fmt.Errorf("sample name %q must not contain path separators", o.Sample)
	}
	if o.OutDir == "" {
		return errors.New("output directory is required")
	}
	switch o.Format {
	case output.FormatXLSX, output.FormatCSV, output.FormatTSV:
	default:
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	if o.Parallel < 0 {
		return errors.New("--parallel must be ≥ 0")
	}
	return nil
}

// ValidateTable checks table options after positionals are assigned.
func ValidateTable(o *TableOptions) error {
	if err := ValidateCommon(&o.Common); err != nil {
		return err
	}
	if o.Report == "" {
		return errors.New("report file is required")
	}
	switch o.Output {
	case output.FormatTSV, output.FormatCSV, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	return nil
}
