// internal/app/export.go
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kreport/internal/cli"
	"kreport/internal/export"
	"kreport/internal/pipeline"
	"kreport/internal/report"
	"kreport/internal/sqlitesink"
	"kreport/internal/writers"
)

func newExportCommand(r *runner) *cobra.Command {
	var o cli.ExportOptions
	cmd := &cobra.Command{
		Use:   "export REPORT SAMPLE OUTDIR",
		Short: "Write per-domain rank tables and an all-species table",
		Long: `Writes, under OUTDIR (created if missing):

  SAMPLE_<domain>.xlsx      one sheet per rank (phylum ... species), per domain
  SAMPLE_all_species.csv    every species row across all domains

With --format csv or tsv each domain sheet becomes its own file,
SAMPLE_<domain>_<rank>.<ext>. Domains and ranks with no rows produce no output.`,
		Example: `  kreport sample.kreport sample1 results/
  kreport export --format tsv --sqlite taxa.db sample.kreport.gz sample1 results/`,
		Args: cobra.ExactArgs(3),
	}
	cli.RegisterExport(cmd.Flags(), &o)
	cmd.RunE = r.wrap(func(cmd *cobra.Command, args []string) error {
		o.Common = r.common
		o.Report, o.Sample, o.OutDir = args[0], args[1], args[2]
		if err := cli.ValidateExport(&o); err != nil {
			return usageError(err)
		}
		return r.runExport(cmd.Context(), o)
	})
	return cmd
}

func (r *runner) runExport(ctx context.Context, o cli.ExportOptions) error {
	r.log.Info("input parameters",
		zap.String("report", o.Report),
		zap.String("sample", o.Sample),
		zap.String("output_path", o.OutDir),
		zap.String("format", o.Format),
	)

	res, err := r.load(ctx, o.Report)
	if err != nil {
		return err
	}

	plan := export.Planner{Tables: r.tables, Logger: r.log, Metrics: r.metrics}.Build(res.Records)
	paths, err := writers.WritePlan(ctx, writers.PlanOptions{
		Dir:      o.OutDir,
		Sample:   o.Sample,
		Format:   o.Format,
		Parallel: o.Parallel,
		Logger:   r.log,
		Metrics:  r.metrics,
	}, plan)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return ioError(err)
	}

	if o.SQLite != "" {
		if err := r.storeSQLite(ctx, o, res.Records); err != nil {
			return err
		}
	}

	r.log.Info("export complete", zap.Int("files", len(paths)), zap.Int("units", len(plan.Units())))
	return nil
}

func (r *runner) storeSQLite(ctx context.Context, o cli.ExportOptions, recs []report.Record) error {
	sink, err := sqlitesink.Open(ctx, o.SQLite)
	if err != nil {
		return ioError(err)
	}
	defer sink.Close()
	n, err := sink.Store(ctx, r.runID, o.Sample, recs)
	if err != nil {
		return ioError(fmt.Errorf("store records in %s: %w", o.SQLite, err))
	}
	r.metrics.SQLiteRowsStored.Add(float64(n))
	r.log.Info("records stored", zap.String("sqlite", o.SQLite), zap.Int("rows", n))
	return nil
}

// load opens and runs the report through the core pipeline. A report that
// cannot be opened is fatal before any processing starts.
func (r *runner) load(ctx context.Context, path string) (pipeline.Result, error) {
	rc, err := report.Open(path)
	if err != nil {
		return pipeline.Result{}, usageError(fmt.Errorf("report file is not readable: %w", err))
	}
	defer rc.Close()

	res, err := pipeline.Run(ctx, pipeline.Config{Tables: r.tables, Logger: r.log, Metrics: r.metrics}, rc)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return res, err
		}
		return res, usageError(err)
	}
	return res, nil
}
