// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"kreport/internal/report"
	"kreport/pkg/api"
)

// ToAPITaxon converts a Record to the stable wire schema (v1).
func ToAPITaxon(r report.Record) api.TaxonV1 {
	return api.TaxonV1{
		Domain:            r.Domain,
		Rank:              r.Rank,
		TaxID:             r.TaxID,
		Name:              r.Name,
		ReadsClade:        r.ReadsClade,
		RelativeAbundance: r.RelativeAbundance,
		Lineage:           r.Lineage,
		Depth:             r.Depth,
		ReadsTaxon:        r.ReadsTaxon,
		Percent:           r.Percent,
	}
}

// WriteJSON writes a single indented JSON array of v1 taxa.
func WriteJSON(w io.Writer, list []report.Record) error {
	out := make([]api.TaxonV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPITaxon(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteJSONL writes one v1 taxon per line.
func WriteJSONL(w io.Writer, list []report.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range list {
		if err := enc.Encode(ToAPITaxon(r)); err != nil {
			return err
		}
	}
	return nil
}
