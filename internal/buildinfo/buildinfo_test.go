package buildinfo

import (
	"testing"

	"github.com/jenkins-infra/metacheck/cli"
	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	oldCLIVersion, oldCLIDate := cli.Version, cli.Date
	t.Cleanup(func() {
		Version, Commit, Date = oldVersion, oldCommit, oldDate
		cli.Version, cli.Date = oldCLIVersion, oldCLIDate
	})

	tests := []struct {
		name                  string
		version, commit, date string
		cliVersion, cliDate   string
		want                  string
	}{
		{name: "defaults", want: "dev"},
		{name: "cli fallback", cliVersion: "1.0.0", cliDate: "2026-01-02", want: "1.0.0 (date=2026-01-02)"},
		{name: "own values win", version: "1.2.3", commit: "0123456789abcdef", date: "2026-02-09", cliVersion: "0.0.1", want: "1.2.3 (commit=0123456, date=2026-02-09)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.version, tt.commit, tt.date
			cli.Version, cli.Date = tt.cliVersion, tt.cliDate
			assert.Equal(t, tt.want, Summary())
		})
	}
}
