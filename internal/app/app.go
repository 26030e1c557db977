// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kreport/internal/cli"
	"kreport/internal/config"
	"kreport/internal/logging"
	"kreport/internal/metrics"
	"kreport/internal/version"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags, unreadable input or tables
	ExitIO       = 3 // output could not be written
	ExitCanceled = 130
)

// exitError carries the exit code a failure maps to.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: ExitUsage, err: err} }
func ioError(err error) error    { return &exitError{code: ExitIO, err: err} }

// runner is the per-invocation state shared by all commands.
type runner struct {
	stdout, stderr io.Writer

	common  cli.Common
	log     *zap.Logger
	runID   string
	tables  config.Tables
	metrics *metrics.Metrics
}

// NewRootCommand builds the command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	r := &runner{stdout: stdout, stderr: stderr}

	root := newExportCommand(r)
	root.Use = "kreport REPORT SAMPLE OUTDIR"
	root.Short = "Lineage, domain and relative abundance tables from a Kraken-style report"
	root.Long = `kreport reads a taxonomic classification report (tab-separated, names
indented two spaces per level), rebuilds every row's lineage, labels it with a
domain, and writes per-domain tables with one section per rank plus a
cross-domain species table. Relative abundance is always computed within the
table it appears in.

Running kreport with three arguments is the same as "kreport export".`
	root.Version = version.Version
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetOut(stdout)
	root.SetErr(stderr)

	cli.RegisterCommon(root.PersistentFlags(), &r.common)

	export := newExportCommand(r)
	root.AddCommand(export, newTableCommand(r))
	return root
}

// RunContext parses argv, runs the selected command and returns an exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	var ee *exitError
	if errors.As(err, &ee) {
		_, _ = fmt.Fprintf(stderr, "ERROR: %v\n", ee.err)
		return ee.code
	}
	// Flag and argument errors from cobra.
	_, _ = fmt.Fprintf(stderr, "ERROR: %v\n", err)
	_, _ = fmt.Fprintln(stderr, "Run 'kreport --help' for usage.")
	return ExitUsage
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// wrap sets up logging, tables and metrics around fn, and writes the metrics
// file afterwards even when fn fails.
func (r *runner) wrap(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := r.setup(); err != nil {
			return err
		}
		defer func() { _ = r.log.Sync() }()

		err := fn(cmd, args)
		if r.common.MetricsFile != "" {
			if mErr := r.metrics.WriteTextfile(r.common.MetricsFile); mErr != nil {
				r.log.Error("writing metrics file failed", zap.Error(mErr))
				if err == nil {
					err = ioError(fmt.Errorf("write metrics file: %w", mErr))
				}
			}
		}
		return err
	}
}

func (r *runner) setup() error {
	if err := cli.ValidateCommon(&r.common); err != nil {
		return usageError(err)
	}
	log, err := logging.New(r.stderr, logging.Options{
		Verbose: r.common.Verbose,
		Quiet:   r.common.Quiet,
		Format:  r.common.LogFormat,
	})
	if err != nil {
		return usageError(err)
	}
	r.runID = uuid.NewString()
	r.log = log.With(zap.String("run_id", r.runID))
	r.metrics = metrics.New()

	r.tables = config.DefaultTables()
	if r.common.TablesFile != "" {
		t, err := config.LoadTables(r.common.TablesFile)
		if err != nil {
			return usageError(err)
		}
		r.tables = t
		r.log.Debug("tables loaded", zap.String("file", r.common.TablesFile),
			zap.Strings("domains", t.DomainNames()))
	}
	return nil
}
