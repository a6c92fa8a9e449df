package version

import (
	"fmt"
	"runtime"

	"github.com/jenkins-infra/metacheck/internal/buildinfo"
	"github.com/spf13/cobra"
)

var (
	flagShort bool
	flagJSON  bool
)

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if flagShort {
			_, err := fmt.Fprintln(w, buildinfo.ResolvedVersion())
			return err
		}
		if !flagJSON {
			_, err := fmt.Fprintf(w, "metacheck %s\n", buildinfo.Summary())
			return err
		}
		return encodeJSON(w, map[string]any{
			"version":  buildinfo.ResolvedVersion(),
			"commit":   buildinfo.Commit,
			"date":     buildinfo.Date,
			"built_by": buildinfo.BuiltBy,
			"go":       runtime.Version(),
			"go_os":    runtime.GOOS,
			"go_arch":  runtime.GOARCH,
		})
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&flagShort, "short", false, "Print only the version string")
	VersionCmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")
}
