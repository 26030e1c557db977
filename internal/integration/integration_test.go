// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kreport/internal/app"
	"kreport/internal/sqlitesink"
	"kreport/pkg/api"
)

// A Kraken-style report: padded percent column, names indented two spaces
// per level, one depth jump (Bacillus subtilis) and one junk line.
const kraken = "" +
	"  2.00\t20\t20\tU\t0\tunclassified\n" +
	" 98.00\t980\t2\tR\t1\troot\n" +
	" 97.00\t970\t0\tR1\t131567\t  cellular organisms\n" +
	" 60.00\t600\t1\tD\t2\t    Bacteria\n" +
	" 50.00\t500\t0\tP\t1224\t      Proteobacteria\n" +
	" 50.00\t500\t0\tG\t561\t        Escherichia\n" +
	" 50.00\t500\t500\tS\t562\t          Escherichia coli\n" +
	" 10.00\t99\t0\tP\t1239\t      Firmicutes\n" +
	" 10.00\t99\t99\tS\t1423\t            Bacillus subtilis\n" +
	" 37.00\t370\t0\tD\t2157\t    Archaea\n" +
	" 37.00\t370\t370\tS\t2190\t      Methanocaldococcus jannaschii\n" +
	"  1.00\t8\t0\tD\t10239\t  Viruses\n" +
	"  1.00\t8\t8\tS\t10710\t    Escherichia phage lambda\n" +
	"this line is not a report row\n"

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.RunContext(context.Background(), args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestExport_CSV(t *testing.T) {
	rep := write(t, "s.kreport", kraken)
	dir := filepath.Join(t.TempDir(), "out")

	code, _, stderr := run(t, "export", "--format", "csv", rep, "s1", dir)
	require.Equal(t, 0, code, stderr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"s1_all_species.csv",
		"s1_archaea_species.csv",
		"s1_bacteria_phylum.csv",
		"s1_bacteria_genus.csv",
		"s1_bacteria_species.csv",
		"s1_virus_species.csv",
	}, names)

	data, err := os.ReadFile(filepath.Join(dir, "s1_bacteria_species.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data),
		"Bacteria,S,562,Escherichia coli,500,83.47245409015025,root>cellular organisms>Bacteria>Proteobacteria>Escherichia>Escherichia coli\n")
	assert.Contains(t, stderr, "no data for domain")
}

func TestExport_DepthJumpIsRecovered(t *testing.T) {
	rep := write(t, "s.kreport", kraken)
	dir := t.TempDir()
	code, _, stderr := run(t, "--format", "tsv", "-q", rep, "s", dir)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(filepath.Join(dir, "s_bacteria_species.tsv"))
	require.NoError(t, err)
	// Bacillus subtilis jumps from depth 3 to depth 6; it hangs off Firmicutes.
	assert.Contains(t, string(data), "root>cellular organisms>Bacteria>Firmicutes>Bacillus subtilis")
}

func TestExport_DefaultXLSX(t *testing.T) {
	rep := write(t, "s.kreport", kraken)
	dir := t.TempDir()
	code, _, stderr := run(t, rep, "s", dir)
	require.Equal(t, 0, code, stderr)

	f, err := excelize.OpenFile(filepath.Join(dir, "s_bacteria.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"phylum", "genus", "species"}, f.GetSheetList())

	_, err = os.Stat(filepath.Join(dir, "s_all_species.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "s_fungi.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestExport_MetricsAndSQLite(t *testing.T) {
	rep := write(t, "s.kreport", kraken)
	dir := t.TempDir()
	prom := filepath.Join(dir, "run.prom")
	db := filepath.Join(dir, "taxa.db")

	code, _, stderr := run(t, "export", "--metrics-file", prom, "--sqlite", db, "--format", "csv", rep, "s9", filepath.Join(dir, "out"))
	require.Equal(t, 0, code, stderr)

	m, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(m), `kreport_lines_total{outcome="parsed"} 13`)
	assert.Contains(t, string(m), `kreport_lines_total{outcome="too_few_fields"} 1`)
	assert.Contains(t, string(m), "kreport_depth_recoveries_total 1")
	assert.Contains(t, string(m), "kreport_sqlite_rows_total 13")

	sink, err := sqlitesink.Open(context.Background(), db)
	require.NoError(t, err)
	defer sink.Close()
	n, err := sink.Count(context.Background(), "s9")
	require.NoError(t, err)
	assert.Equal(t, 13, n)
}

func TestExport_MissingReport(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := run(t, filepath.Join(dir, "nope.kreport"), "s", filepath.Join(dir, "out"))
	assert.Equal(t, app.ExitUsage, code)
	assert.Contains(t, stderr, "report file is not readable")
	_, err := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(err), "nothing is created before the input check")
}

func TestExport_BadUsage(t *testing.T) {
	code, _, stderr := run(t, "only-one-arg")
	assert.Equal(t, app.ExitUsage, code)
	assert.Contains(t, stderr, "kreport --help")

	rep := write(t, "s.kreport", kraken)
	code, _, _ = run(t, "--format", "ods", rep, "s", t.TempDir())
	assert.Equal(t, app.ExitUsage, code)
}

func TestExport_BadTables(t *testing.T) {
	rep := write(t, "s.kreport", kraken)
	tables := write(t, "t.yaml", "domains:\n  - name: X\n")
	code, _, stderr := run(t, "--tables", tables, rep, "s", t.TempDir())
	assert.Equal(t, app.ExitUsage, code)
	assert.Contains(t, stderr, "no keywords")
}

func TestTable_SpeciesTSV(t *testing.T) {
	rep := write(t, "s.kreport", kraken)
	code, stdout, stderr := run(t, "table", "-r", "S", rep)
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "domain\trank\ttax_id\tname\treads_clade\trelative_abundance\tlineage", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Bacteria\tS\t562\tEscherichia coli\t500\t"))
	assert.True(t, strings.HasPrefix(lines[4], "Virus\tS\t10710\t"))
}

func TestTable_JSONSumsToHundred(t *testing.T) {
	rep := write(t, "s.kreport", kraken)
	code, stdout, stderr := run(t, "table", "--domain", "Bacteria", "--rank", "P", "-o", "json", rep)
	require.Equal(t, 0, code, stderr)

	var got []api.TaxonV1
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 2)
	assert.InDelta(t, 100.0, got[0].RelativeAbundance+got[1].RelativeAbundance, 1e-9)
}

func TestTable_NoMatchPrintsNothing(t *testing.T) {
	rep := write(t, "s.kreport", kraken)
	code, stdout, stderr := run(t, "table", "-d", "Fungi", rep)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no rows matched")
}

func TestVersionAndHelp(t *testing.T) {
	code, stdout, _ := run(t, "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "kreport version")

	code, stdout, _ = run(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "table")
}

func TestNonFinitePercentRowIsSkipped(t *testing.T) {
	rep := write(t, "s.kreport", kraken+"nan\t500\t500\tS\t562\t          Escherichia coli\n"+
		"+Inf\t5\t5\tS\t563\t          Escherichia albertii\n")

	code, stdout, stderr := run(t, "table", "-r", "S", "-o", "json", rep)
	require.Equal(t, 0, code, stderr)
	var got []api.TaxonV1
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Len(t, got, 4)

	dir := t.TempDir()
	db := filepath.Join(dir, "taxa.db")
	code, _, stderr = run(t, "export", "--format", "csv", "--sqlite", db, rep, "s", filepath.Join(dir, "out"))
	require.Equal(t, 0, code, stderr)

	sink, err := sqlitesink.Open(context.Background(), db)
	require.NoError(t, err)
	defer sink.Close()
	n, err := sink.Count(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, 13, n)
}
