package lint

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jenkins-infra/metacheck/internal/exit"
	"github.com/jenkins-infra/metacheck/internal/stage"
	"github.com/spf13/cobra"
)

// NewCmd returns the `metacheck lint` command.
func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint FILE...",
		Short: "Check metadata files offline against the schema and known migrations",
		Long: `Check local metadata files against the schema and the list of known
migrations. Nothing is fetched and nothing is posted. Files are checked in
order and the first invalid one stops the command.`,
		Args: func(cmd *cobra.Command, args []string) error {
			return exit.Wrap(exit.Usage, cobra.MinimumNArgs(1)(cmd, args))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lintFiles(cmd.OutOrStdout(), args)
		},
	}
}

func lintFiles(w io.Writer, files []string) error {
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := stage.CheckOffline(filepath.ToSlash(name), data); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "ok %s\n", filepath.ToSlash(name)); err != nil {
			return err
		}
	}
	return nil
}
