// Package metrics counts parsed, skipped and recovered records and export
// units. Counters live on a private registry so tests and repeated runs in
// one process never collide.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Line outcomes for LinesTotal.
const (
	OutcomeParsed       = "parsed"
	OutcomeBlank        = "blank"
	OutcomeTooFewFields = "too_few_fields"
	OutcomeBadNumber    = "bad_number"
)

// Unit kinds for ExportUnits and EmptySubsets.
const (
	KindDomain     = "domain"
	KindSection    = "section"
	KindAllSpecies = "all_species"
)

// Metrics is the set of counters one run reports.
type Metrics struct {
	Registry *prometheus.Registry

	LinesTotal       *prometheus.CounterVec
	DepthRecoveries  prometheus.Counter
	RecordsByDomain  *prometheus.CounterVec
	ExportUnits      *prometheus.CounterVec
	EmptySubsets     *prometheus.CounterVec
	FilesWritten     prometheus.Counter
	SQLiteRowsStored prometheus.Counter
}

// New creates and registers all counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		LinesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kreport_lines_total",
			Help: "Report lines read, by outcome.",
		}, []string{"outcome"}),
		DepthRecoveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kreport_depth_recoveries_total",
			Help: "Rows whose depth jumped more than one level and were reattached.",
		}),
		RecordsByDomain: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kreport_records_total",
			Help: "Parsed records, by classified domain.",
		}, []string{"domain"}),
		ExportUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kreport_export_units_total",
			Help: "Export units and sections produced, by kind.",
		}, []string{"kind"}),
		EmptySubsets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kreport_empty_subsets_total",
			Help: "Subsets with no rows that produced no output, by kind.",
		}, []string{"kind"}),
		FilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kreport_files_written_total",
			Help: "Output files written.",
		}),
		SQLiteRowsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kreport_sqlite_rows_total",
			Help: "Records stored in the SQLite sink.",
		}),
	}
	reg.MustRegister(
		m.LinesTotal, m.DepthRecoveries, m.RecordsByDomain,
		m.ExportUnits, m.EmptySubsets, m.FilesWritten, m.SQLiteRowsStored,
	)
	return m
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
