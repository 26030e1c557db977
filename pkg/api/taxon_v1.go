// pkg/api/taxon_v1.go
package api

// TaxonV1 is the stable JSON/JSONL schema for one exported taxon row.
// Field order matches the flat-file column order. Keep names and types stable;
// add new fields only with ",omitempty".
type TaxonV1 struct {
	Domain            string  `json:"domain"`
	Rank              string  `json:"rank"`
	TaxID             uint64  `json:"tax_id"`
	Name              string  `json:"name"`
	ReadsClade        uint64  `json:"reads_clade"`
	RelativeAbundance float64 `json:"relative_abundance"`
	Lineage           string  `json:"lineage"`

	Depth      int     `json:"depth,omitempty"`
	ReadsTaxon uint64  `json:"reads_taxon,omitempty"`
	Percent    float64 `json:"percent,omitempty"`
}
