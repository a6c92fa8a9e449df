// Package buildinfo exposes version metadata for metacheck. Values can be
// overridden at build time via -ldflags; the cli package values are honored
// for release scripts that only know about those.
package buildinfo

import (
	"strings"

	"github.com/jenkins-infra/metacheck/cli"
)

var (
	// Version is the semantic version or custom string. Falls back to cli.Version, then "dev".
	Version = ""
	// Commit is the VCS commit hash (optional).
	Commit = ""
	// Date is the build time (optional). Falls back to cli.Date.
	Date = ""
	// BuiltBy is an optional builder identifier.
	BuiltBy = ""
)

// ResolvedVersion returns Version with its fallbacks applied.
func ResolvedVersion() string {
	switch {
	case Version != "":
		return Version
	case cli.Version != "":
		return cli.Version
	default:
		return "dev"
	}
}

// Summary returns a concise single-line version string.
func Summary() string {
	v := ResolvedVersion()

	d := Date
	if d == "" {
		d = cli.Date
	}

	parts := make([]string, 0, 2)
	if Commit != "" {
		c := Commit
		if len(c) > 7 {
			c = c[:7]
		}
		parts = append(parts, "commit="+c)
	}
	if d != "" {
		parts = append(parts, "date="+d)
	}
	if len(parts) > 0 {
		v += " (" + strings.Join(parts, ", ") + ")"
	}
	return v
}
