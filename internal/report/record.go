// internal/report/record.go
package report

// Rank codes with special meaning to the pipeline. Any other code is kept verbatim.
const (
	RankUnclassified = "U"
	RankSpecies      = "S"
)

// Unclassified is the lineage and domain sentinel for rows that carry no hierarchy.
const Unclassified = "unclassified"

// Record is one taxon row of a classification report.
//
// Percent, ReadsClade, ReadsTaxon, Rank, TaxID, Name and Depth come from the
// parser. Lineage and Domain are filled in place by later stages;
// RelativeAbundance is only meaningful relative to the subset it was computed on.
type Record struct {
	Percent    float64
	ReadsClade uint64
	ReadsTaxon uint64
	Rank       string
	TaxID      uint64
	Name       string
	Depth      int

	Lineage           string
	Domain            string
	RelativeAbundance float64
}

// IsUnclassified reports whether the row is hierarchy-transparent (rank U).
func (r Record) IsUnclassified() bool { return r.Rank == RankUnclassified }
