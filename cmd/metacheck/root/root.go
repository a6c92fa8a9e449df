package root

import (
	"context"
	"log/slog"

	"github.com/jenkins-infra/metacheck/cmd/metacheck/lint"
	"github.com/jenkins-infra/metacheck/cmd/metacheck/run"
	"github.com/jenkins-infra/metacheck/cmd/metacheck/version"
	"github.com/jenkins-infra/metacheck/internal/exit"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for metacheck.
func NewRootCmd() *cobra.Command {
	var verbosity int
	cmd := &cobra.Command{
		Use:   "metacheck",
		Short: "Validate plugin modernization metadata changed by a pull request",
		PersistentPreRun: func(*cobra.Command, []string) {
			SetVerbosity(verbosity)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "issue INFO (-v) and DEBUG (-vv) output")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exit.Wrap(exit.Usage, err)
	})

	// Subcommands
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(run.NewCmd())
	cmd.AddCommand(lint.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// SetVerbosity sets the default logger level from the verbose flag count.
func SetVerbosity(level int) {
	switch level {
	case 0:
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case 1:
		slog.SetLogLoggerLevel(slog.LevelInfo)
	default:
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
}
