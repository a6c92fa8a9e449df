// Package cli holds release values injected by the release pipeline.
package cli

// Version and Date are set at release time using ldflags, e.g.:
//
//	-ldflags "-X 'github.com/jenkins-infra/metacheck/cli.Version=1.2.3' -X 'github.com/jenkins-infra/metacheck/cli.Date=2026-02-09'"
var (
	Version string
	Date    string
)
