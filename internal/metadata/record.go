// Package metadata describes the modernization metadata files written by the
// plugin modernizer and the static reference data used to validate them.
package metadata

import "strings"

// Record is one modernization metadata file.
// Baseline fields come in two alternative groups: either TargetBaseline,
// JenkinsVersion and EffectiveBaseline, or RPUBaseline alone.
type Record struct {
	PluginName           string   `json:"pluginName"`
	PluginRepository     string   `json:"pluginRepository"`
	PluginVersion        string   `json:"pluginVersion"`
	EffectiveBaseline    string   `json:"effectiveBaseline,omitempty"`
	RPUBaseline          string   `json:"rpuBaseline,omitempty"`
	TargetBaseline       string   `json:"targetBaseline,omitempty"`
	JenkinsVersion       string   `json:"jenkinsVersion,omitempty"`
	MigrationName        string   `json:"migrationName"`
	MigrationDescription string   `json:"migrationDescription"`
	Tags                 []string `json:"tags"`
	MigrationID          string   `json:"migrationId"`
	MigrationStatus      string   `json:"migrationStatus"`
	PullRequestURL       string   `json:"pullRequestUrl"`
	PullRequestStatus    string   `json:"pullRequestStatus"`
	DryRun               bool     `json:"dryRun"`
	Additions            int      `json:"additions"`
	Deletions            int      `json:"deletions"`
	ChangedFiles         int      `json:"changedFiles"`
	Key                  string   `json:"key"`
	Path                 string   `json:"path"`
}

// NormalizePath rewrites Windows separators so paths written on any platform
// compare equal.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
