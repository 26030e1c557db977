// Package pipeline reads a classification report and runs it through the
// core stages in order: parse, lineage, domain.
//
// Each stage consumes the whole slice before the next starts; there is no
// concurrency here. Export subsets are cut from the result by the caller.
package pipeline
