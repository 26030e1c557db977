// Package version carries the build version, overridable with
// -ldflags "-X kreport/internal/version.Version=...".
package version

var Version = "0.3.0"
