// Package config holds the static lookup tables that drive classification
// and export: the ordered domain keyword list and the ordered rank map.
//
// Tables are built once at startup, either from the defaults or from a YAML
// file, and then passed by value to the stages that need them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Domain is one classified domain and the lowercase keywords that select it.
type Domain struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Rank maps a report rank code to the long name used for sheets and files.
type Rank struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Tables is the full set of static lookup tables. Order is significant in
// both lists: the first matching domain wins, and ranks are exported in order.
type Tables struct {
	Domains []Domain `yaml:"domains"`
	Ranks   []Rank   `yaml:"ranks"`
}

// DefaultTables returns the built-in tables.
//
// Fungi matches on either of two keywords. A tables file can pin the legacy
// single keyword "fungi, fungus" instead, which matches no real lineage.
func DefaultTables() Tables {
	return Tables{
		Domains: []Domain{
			{Name: "Bacteria", Keywords: []string{"bacteria"}},
			{Name: "Archaea", Keywords: []string{"archaea"}},
			{Name: "Fungi", Keywords: []string{"fungi", "fungus"}},
			{Name: "Virus", Keywords: []string{"virus", "viruses"}},
		},
		Ranks: []Rank{
			{Code: "P", Name: "phylum"},
			{Code: "C", Name: "class"},
			{Code: "O", Name: "order"},
			{Code: "F", Name: "family"},
			{Code: "G", Name: "genus"},
			{Code: "S", Name: "species"},
		},
	}
}

// Validate checks that the tables are usable.
func (t Tables) Validate() error {
	if len(t.Domains) == 0 {
		return errors.New("tables: at least one domain is required")
	}
	seen := map[string]bool{}
	for i, d := range t.Domains {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("tables: domains[%d].name is required", i)
		}
		if strings.EqualFold(d.Name, "unclassified") {
			return fmt.Errorf("tables: domain name %q is reserved", d.Name)
		}
		// Domain names are lowercased into file names.
		key := strings.ToLower(d.Name)
		if seen[key] {
			return fmt.Errorf("tables: duplicate domain %q", d.Name)
		}
		seen[key] = true
		if len(d.Keywords) == 0 {
			return fmt.Errorf("tables: domain %q has no keywords", d.Name)
		}
		for _, kw := range d.Keywords {
			if kw == "" {
				return fmt.Errorf("tables: domain %q has an empty keyword", d.Name)
			}
		}
	}
	if len(t.Ranks) == 0 {
		return errors.New("tables: at least one rank is required")
	}
	codes, names := map[string]bool{}, map[string]bool{}
	for i, r := range t.Ranks {
		if r.Code == "" || r.Name == "" {
			return fmt.Errorf("tables: ranks[%d] needs both code and name", i)
		}
		if codes[r.Code] {
			return fmt.Errorf("tables: duplicate rank code %q", r.Code)
		}
		// Rank names become sheet and file names.
		if names[strings.ToLower(r.Name)] {
			return fmt.Errorf("tables: duplicate rank name %q", r.Name)
		}
		codes[r.Code], names[strings.ToLower(r.Name)] = true, true
	}
	return nil
}

// RankName returns the long name for code, or code itself when unknown.
func (t Tables) RankName(code string) string {
	for _, r := range t.Ranks {
		if r.Code == code {
			return r.Name
		}
	}
	return code
}

// DomainNames returns domain names in table order.
func (t Tables) DomainNames() []string {
	out := make([]string, len(t.Domains))
	for i, d := range t.Domains {
		out[i] = d.Name
	}
	return out
}

// LoadTables reads a YAML tables file. Sections missing from the file keep
// their defaults; a present section replaces the default list entirely.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read tables file: %w", err)
	}
	var file Tables
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Tables{}, fmt.Errorf("failed to parse tables file: %w", err)
	}
	t := DefaultTables()
	t.Merge(file)
	if err := t.Validate(); err != nil {
		return Tables{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Merge replaces each section of t that other sets.
func (t *Tables) Merge(other Tables) {
	if len(other.Domains) > 0 {
		t.Domains = other.Domains
	}
	if len(other.Ranks) > 0 {
		t.Ranks = other.Ranks
	}
}
