package config

import (
	"slices"
	"strings"
)

// CurrentConfigVersion is the schema version of metacheck.cue files.
// Bump it only with a migration note for existing files.
const CurrentConfigVersion = "1"

// SupportedConfigVersions are the configVersion values Load understands,
// oldest first.
var SupportedConfigVersions = []string{CurrentConfigVersion}

// IsSupportedConfigVersion reports whether a file declaring version v can be
// loaded.
func IsSupportedConfigVersion(v string) bool {
	return slices.Contains(SupportedConfigVersions, v)
}

// SupportedConfigVersionsCSV formats SupportedConfigVersions for error text.
func SupportedConfigVersionsCSV() string {
	return strings.Join(SupportedConfigVersions, ", ")
}
