// Package export decides which subsets of an enriched report become output
// units, and aggregates each subset independently.
//
// Writers own serialization; this package never touches the filesystem.
package export

import (
	"strings"

	"go.uber.org/zap"

	"kreport/internal/config"
	"kreport/internal/metrics"
	"kreport/internal/report"
	"kreport/internal/subset"
)

// Section is one rank's slice of a unit, aggregated over itself.
type Section struct {
	Rank     string // report rank code
	RankName string // long name, used as sheet or file suffix
	Records  []report.Record
}

// Unit is one output artifact: a workbook, or a group of flat files.
type Unit struct {
	Name     string // file stem suffix, e.g. "bacteria" or "all_species"
	Domain   string // empty for the all-species unit
	Sections []Section
}

// Rows returns the number of records across all sections.
func (u Unit) Rows() int {
	n := 0
	for _, s := range u.Sections {
		n += len(s.Records)
	}
	return n
}

// Plan is every unit one report produces. A nil AllSpecies means the report
// carried no species rows.
type Plan struct {
	AllSpecies *Unit
	Domains    []Unit
}

// Units returns the domain units followed by the all-species unit, if any.
func (p Plan) Units() []Unit {
	out := append([]Unit(nil), p.Domains...)
	if p.AllSpecies != nil {
		out = append(out, *p.AllSpecies)
	}
	return out
}

// Planner builds Plans from a fixed set of tables.
type Planner struct {
	Tables  config.Tables
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// AllSpeciesName is the unit name of the cross-domain species export.
const AllSpeciesName = "all_species"

// Build cuts recs into units. Subsets with no rows produce nothing and are
// logged at info level. recs is never modified.
func (pl Planner) Build(recs []report.Record) Plan {
	log := pl.Logger
	if log == nil {
		log = zap.NewNop()
	}
	var plan Plan

	for _, d := range pl.Tables.Domains {
		domainRows := subset.Filter(recs, subset.Predicate{Domain: d.Name})
		if len(domainRows) == 0 {
			log.Info("no data for domain, skipping", zap.String("domain", d.Name))
			pl.empty(metrics.KindDomain)
			continue
		}
		u := Unit{Name: strings.ToLower(d.Name), Domain: d.Name}
		for _, rk := range pl.Tables.Ranks {
			rows := subset.Select(domainRows, subset.Predicate{Rank: rk.Code})
			if len(rows) == 0 {
				log.Info("empty rank section, skipping", zap.String("domain", d.Name), zap.String("rank", rk.Name))
				pl.empty(metrics.KindSection)
				continue
			}
			u.Sections = append(u.Sections, Section{Rank: rk.Code, RankName: rk.Name, Records: rows})
			pl.produced(metrics.KindSection)
		}
		if len(u.Sections) == 0 {
			log.Info("no ranked rows for domain, skipping", zap.String("domain", d.Name))
			pl.empty(metrics.KindDomain)
			continue
		}
		plan.Domains = append(plan.Domains, u)
		pl.produced(metrics.KindDomain)
	}

	species := subset.Select(recs, subset.Predicate{Rank: report.RankSpecies})
	if len(species) == 0 {
		log.Info("no species rows, skipping all-species export")
		pl.empty(metrics.KindAllSpecies)
	} else {
		plan.AllSpecies = &Unit{
			Name: AllSpeciesName,
			Sections: []Section{{
				Rank:     report.RankSpecies,
				RankName: pl.Tables.RankName(report.RankSpecies),
				Records:  species,
			}},
		}
		pl.produced(metrics.KindAllSpecies)
	}
	return plan
}

func (pl Planner) empty(kind string) {
	if pl.Metrics != nil {
		pl.Metrics.EmptySubsets.WithLabelValues(kind).Inc()
	}
}

func (pl Planner) produced(kind string) {
	if pl.Metrics != nil {
		pl.Metrics.ExportUnits.WithLabelValues(kind).Inc()
	}
}
