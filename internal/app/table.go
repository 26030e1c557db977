// internal/app/table.go
package app

import (
	"bufio"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kreport/internal/cli"
	"kreport/internal/subset"
	"kreport/internal/writers"
)

func newTableCommand(r *runner) *cobra.Command {
	var o cli.TableOptions
	cmd := &cobra.Command{
		Use:   "table REPORT",
		Short: "Print enriched rows to stdout, optionally filtered by domain and rank",
		Long: `Prints every row that matches --domain and --rank (both optional) with its
lineage, domain and relative abundance. Abundance is computed over the printed
rows only. Use '-' to read the report from stdin.`,
		Example: `  kreport table -d Bacteria -r G sample.kreport | head
  zcat sample.kreport.gz | kreport table -r S -o jsonl -`,
		Args: cobra.ExactArgs(1),
	}
	noHeader := cli.RegisterTable(cmd.Flags(), &o)
	cmd.RunE = r.wrap(func(cmd *cobra.Command, args []string) error {
		o.Common = r.common
		o.Report = args[0]
		o.Header = !*noHeader
		if err := cli.ValidateTable(&o); err != nil {
			return usageError(err)
		}

		res, err := r.load(cmd.Context(), o.Report)
		if err != nil {
			return err
		}
		rows := subset.Select(res.Records, subset.Predicate{Domain: o.Domain, Rank: o.Rank})
		if len(rows) == 0 {
			r.log.Info("no rows matched",
				zap.String("domain", o.Domain), zap.String("rank", o.Rank),
				zap.Strings("known_domains", knownDomains(res.Domains)))
			return nil
		}

		outw := bufio.NewWriter(r.stdout)
		if err := writers.WriteTable(outw, o.Output, o.Header, rows); writers.IsBrokenPipe(err) {
			return nil
		} else if err != nil {
			return ioError(err)
		}
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return nil
		} else if err != nil {
			return ioError(err)
		}
		return nil
	})
	return cmd
}

func knownDomains(counts map[string]int) []string {
	var out []string
	for d := range counts {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
