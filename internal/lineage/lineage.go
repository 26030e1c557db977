// Package lineage recovers each row's ancestor path from the depth-indented,
// preorder layout of a classification report.
//
// The only state is a stack of ancestor names where position i holds the
// ancestor at depth i. Rows are visited once, in input order.
package lineage

import (
	"strings"

	"kreport/internal/report"
)

// Separator joins ancestor names in a lineage string.
const Separator = ">"

// Stats summarizes one Build pass.
type Stats struct {
	Classified   int
	Unclassified int
	// Recovered counts rows whose depth jumped more than one level past the
	// current stack; they are attached to the deepest available ancestor.
	Recovered int
}

// Build assigns Lineage to every record in place and returns pass statistics.
// Rank U rows get the unclassified sentinel and leave the stack untouched.
func Build(recs []report.Record) Stats {
	var (
		st    Stats
		stack []string
	)
	for i := range recs {
		r := &recs[i]
		if r.IsUnclassified() {
			r.Lineage = report.Unclassified
			st.Unclassified++
			continue
		}
		st.Classified++

		depth := r.Depth
		if depth < 0 {
			depth = 0
		}
		for len(stack) > depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) < depth {
			// Nothing sits above the stack top to drop; the row hangs off
			// whatever ancestors remain.
			st.Recovered++
		}
		stack = append(stack, r.Name)
		r.Lineage = strings.Join(stack, Separator)
	}
	return st
}

// Path splits a lineage string back into its ancestor names.
// The unclassified sentinel yields nil.
func Path(lin string) []string {
	if lin == "" || lin == report.Unclassified {
		return nil
	}
	return strings.Split(lin, Separator)
}
