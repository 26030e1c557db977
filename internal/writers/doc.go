// Package writers turns export units into files and tables into stdout.
//
// Design:
//   - Writers own all presentation knowledge (sheets, CSV/TSV, JSON/JSONL).
//   - export decides what goes into a unit; pipeline never sees a writer.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
