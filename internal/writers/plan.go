// internal/writers/plan.go
package writers

import (
	"context"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kreport/internal/export"
	"kreport/internal/metrics"
	"kreport/internal/output"
)

// PlanOptions controls where and how a plan is written.
type PlanOptions struct {
	Dir      string
	Sample   string
	Format   string // domain unit format: xlsx | csv | tsv
	Parallel int    // max concurrent unit writers (<=0 = one per unit)
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// FlatFormat is the format of the all-species unit for a given domain unit
// format: TSV stays TSV, everything else is CSV.
func FlatFormat(unitFormat string) string {
	if unitFormat == output.FormatTSV {
		return output.FormatTSV
	}
	return output.FormatCSV
}

// WritePlan creates o.Dir if needed and writes every unit of plan. Domain
// units are written concurrently; each owns its records, so nothing is
// shared between goroutines. Paths are returned sorted.
func WritePlan(ctx context.Context, o PlanOptions, plan export.Plan) ([]string, error) {
	if _, ok := unitWriters[o.Format]; !ok {
		return nil, fmt.Errorf("unknown unit format %q (no writer registered)", o.Format)
	}
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	type job struct {
		format string
		unit   export.Unit
	}
	jobs := make([]job, 0, len(plan.Domains)+1)
	for _, u := range plan.Domains {
		jobs = append(jobs, job{o.Format, u})
	}
	if plan.AllSpecies != nil {
		jobs = append(jobs, job{FlatFormat(o.Format), *plan.AllSpecies})
	}

	results := make([][]string, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if o.Parallel > 0 {
		g.SetLimit(o.Parallel)
	}
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			paths, err := WriteUnit(j.format, o.Dir, o.Sample, j.unit)
			if err != nil {
				return fmt.Errorf("unit %s: %w", j.unit.Name, err)
			}
			results[i] = paths
			for _, p := range paths {
				log.Info("written", zap.String("file", p), zap.String("unit", j.unit.Name))
			}
			if o.Metrics != nil {
				o.Metrics.FilesWritten.Add(float64(len(paths)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []string
	for _, ps := range results {
		all = append(all, ps...)
	}
	sort.Strings(all)
	return all, nil
}
