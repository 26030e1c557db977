// internal/classify/classify.go
package classify

import (
	"strings"

	"kreport/internal/config"
	"kreport/internal/report"
)

// Classifier maps a lineage to a coarse domain by keyword substring search.
// It is immutable after construction.
type Classifier struct {
	domains []config.Domain
}

// New builds a Classifier over the domain list of t. Keywords are
// lowercased, so matching is case-insensitive.
func New(t config.Tables) *Classifier {
	ds := make([]config.Domain, len(t.Domains))
	for i, d := range t.Domains {
		kws := make([]string, len(d.Keywords))
		for j, kw := range d.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		ds[i] = config.Domain{Name: d.Name, Keywords: kws}
	}
	return &Classifier{domains: ds}
}

// Domain returns the first domain, in table order, with a keyword contained
// anywhere in the lowercased lineage. The match is plain substring
// containment, not token matching.
func (c *Classifier) Domain(lineage string) string {
	if lineage == report.Unclassified {
		return report.Unclassified
	}
	low := strings.ToLower(lineage)
	for _, d := range c.domains {
		for _, kw := range d.Keywords {
			if strings.Contains(low, kw) {
				return d.Name
			}
		}
	}
	return report.Unclassified
}

// Apply sets Domain on every record in place and returns per-domain counts,
// including report.Unclassified.
func (c *Classifier) Apply(recs []report.Record) map[string]int {
	counts := make(map[string]int, len(c.domains)+1)
	for i := range recs {
		d := c.Domain(recs[i].Lineage)
		recs[i].Domain = d
		counts[d]++
	}
	return counts
}
