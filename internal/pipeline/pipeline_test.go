package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kreport/internal/config"
	"kreport/internal/metrics"
	"kreport/internal/report"
	"kreport/internal/subset"
)

const example = "100.00\t1000\t0\tD\t2\t Bacteria\n" +
	"50.00\t500\t100\tP\t1224\t  Proteobacteria\n" +
	"50.00\t500\t50\tG\t561\t    Escherichia\n" +
	"50.00\t500\t450\tS\t562\t      Escherichia coli\n"

func TestRun_EndToEndExample(t *testing.T) {
	res, err := Run(context.Background(), Config{Tables: config.DefaultTables()}, strings.NewReader(example))
	require.NoError(t, err)
	require.Len(t, res.Records, 4)

	for i, r := range res.Records {
		assert.Equal(t, i, r.Depth)
		assert.Equal(t, "Bacteria", r.Domain)
	}
	assert.Equal(t, "Bacteria>Proteobacteria>Escherichia>Escherichia coli", res.Records[3].Lineage)

	species := subset.Select(res.Records, subset.Predicate{Rank: report.RankSpecies})
	require.Len(t, species, 1)
	assert.Equal(t, "Escherichia coli", species[0].Name)
	assert.Equal(t, 100.0, species[0].RelativeAbundance)
}

func TestRun_KrakenStyleReport(t *testing.T) {
	in := "  5.00\t50\t50\tU\t0\tunclassified\n" +
		" 95.00\t950\t10\tR\t1\troot\n" +
		" 90.00\t900\t0\tR1\t131567\t  cellular organisms\n" +
		" 60.00\t600\t5\tD\t2\t    Bacteria\n" +
		" 60.00\t595\t595\tS\t562\t      Escherichia coli\n" +
		" 30.00\t300\t0\tD\t2157\t    Archaea\n" +
		"  5.00\t50\t50\tD\t10239\t  Viruses\n"
	m := metrics.New()
	res, err := Run(context.Background(), Config{Tables: config.DefaultTables(), Metrics: m}, strings.NewReader(in))
	require.NoError(t, err)

	got := map[string]string{}
	for _, r := range res.Records {
		got[r.Name] = r.Domain
	}
	assert.Equal(t, map[string]string{
		"unclassified":       report.Unclassified,
		"root":               report.Unclassified,
		"cellular organisms": report.Unclassified,
		"Bacteria":           "Bacteria",
		"Escherichia coli":   "Bacteria",
		"Archaea":            "Archaea",
		"Viruses":            "Virus",
	}, got)
	assert.Equal(t, "root>Viruses", res.Records[6].Lineage)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.LinesTotal.WithLabelValues(metrics.OutcomeParsed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsByDomain.WithLabelValues("Bacteria")))
}

func TestRunFile_Missing(t *testing.T) {
	_, err := RunFile(context.Background(), Config{Tables: config.DefaultTables()}, filepath.Join(t.TempDir(), "x"))
	assert.Error(t, err)
}

func TestRunFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "s.kreport")
	require.NoError(t, os.WriteFile(p, []byte(example), 0o644))
	res, err := RunFile(context.Background(), Config{Tables: config.DefaultTables()}, p)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Read.Parsed)
}
