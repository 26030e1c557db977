// internal/writers/registry.go
package writers

import (
	"fmt"
	"sort"

	"kreport/internal/export"
)

// UnitWriter writes one unit under dir and returns the paths it created.
type UnitWriter func(dir, sample string, u export.Unit) ([]string, error)

// Unit writer registry (format -> handler). Registered in init() blocks of
// the format files.
var unitWriters = map[string]UnitWriter{}

// RegisterUnit adds or replaces the writer for format (last wins).
func RegisterUnit(format string, fn UnitWriter) { unitWriters[format] = fn }

// UnitFormats lists the registered formats, sorted.
func UnitFormats() []string {
	out := make([]string, 0, len(unitWriters))
	for f := range unitWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WriteUnit dispatches u to the writer registered for format.
func WriteUnit(format, dir, sample string, u export.Unit) ([]string, error) {
	fn, ok := unitWriters[format]
	if !ok {
		return nil, fmt.Errorf("unknown unit format %q (no writer registered)", format)
	}
	return fn(dir, sample, u)
}
