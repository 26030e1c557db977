// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"kreport/internal/classify"
	"kreport/internal/config"
	"kreport/internal/lineage"
	"kreport/internal/metrics"
	"kreport/internal/report"
)

// Config wires the run's static tables and observability sinks.
type Config struct {
	Tables  config.Tables
	Logger  *zap.Logger      // nil = no logging
	Metrics *metrics.Metrics // nil = no counters
}

// Result is the enriched report plus what each stage observed.
type Result struct {
	Records []report.Record
	Read    report.ReadStats
	Lineage lineage.Stats
	Domains map[string]int
}

// Run parses r and assigns lineage and domain to every record.
func Run(ctx context.Context, cfg Config, r io.Reader) (Result, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	recs, rs, err := report.Read(ctx, r, log)
	if err != nil {
		return Result{}, fmt.Errorf("read report: %w", err)
	}
	ls := lineage.Build(recs)
	domains := classify.New(cfg.Tables).Apply(recs)

	res := Result{Records: recs, Read: rs, Lineage: ls, Domains: domains}
	record(cfg.Metrics, res)

	log.Info("report parsed",
		zap.Int("lines", rs.Lines),
		zap.Int("records", rs.Parsed),
		zap.Int("skipped", rs.Skipped()),
		zap.Int("unclassified_rows", ls.Unclassified),
		zap.Int("depth_recoveries", ls.Recovered),
	)
	return res, nil
}

// RunFile opens path (see report.Open) and calls Run.
func RunFile(ctx context.Context, cfg Config, path string) (Result, error) {
	rc, err := report.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer rc.Close()
	return Run(ctx, cfg, rc)
}

func record(m *metrics.Metrics, res Result) {
	if m == nil {
		return
	}
	rs := res.Read
	m.LinesTotal.WithLabelValues(metrics.OutcomeParsed).Add(float64(rs.Parsed))
	m.LinesTotal.WithLabelValues(metrics.OutcomeBlank).Add(float64(rs.Blank))
	m.LinesTotal.WithLabelValues(metrics.OutcomeTooFewFields).Add(float64(rs.TooFewFields))
	m.LinesTotal.WithLabelValues(metrics.OutcomeBadNumber).Add(float64(rs.BadNumber))
	m.DepthRecoveries.Add(float64(res.Lineage.Recovered))
	for d, n := range res.Domains {
		m.RecordsByDomain.WithLabelValues(d).Add(float64(n))
	}
}
