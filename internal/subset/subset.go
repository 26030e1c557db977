// Package subset selects rows by domain and rank and computes each row's
// share of the selection's reads.
package subset

import "kreport/internal/report"

// Predicate selects records. An empty field matches anything.
type Predicate struct {
	Domain string
	Rank   string
}

// Match reports whether r satisfies every set field of p.
func (p Predicate) Match(r report.Record) bool {
	if p.Domain != "" && r.Domain != p.Domain {
		return false
	}
	if p.Rank != "" && r.Rank != p.Rank {
		return false
	}
	return true
}

// Filter returns, in input order, copies of the records matching p.
// The result never aliases recs, so aggregating it leaves recs untouched.
func Filter(recs []report.Record, p Predicate) []report.Record {
	var out []report.Record
	for _, r := range recs {
		if p.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate sets RelativeAbundance on every record of recs to its share of
// the summed ReadsClade, in percent. A zero total sets every value to 0.
// It returns the total.
func Aggregate(recs []report.Record) uint64 {
	var total uint64
	for _, r := range recs {
		total += r.ReadsClade
	}
	if total == 0 {
		for i := range recs {
			recs[i].RelativeAbundance = 0
		}
		return 0
	}
	for i := range recs {
		recs[i].RelativeAbundance = float64(recs[i].ReadsClade) / float64(total) * 100
	}
	return total
}

// Select is Filter followed by Aggregate.
func Select(recs []report.Record, p Predicate) []report.Record {
	out := Filter(recs, p)
	Aggregate(out)
	return out
}
