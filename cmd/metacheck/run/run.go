package run

import (
	"context"
	"io"
	"strings"

	"github.com/jenkins-infra/metacheck/internal/config"
	"github.com/jenkins-infra/metacheck/internal/exit"
	"github.com/jenkins-infra/metacheck/internal/ghapi"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	flags      config.Flags
}

// client is what a run needs from the hosting service.
type client interface {
	ghapi.API
	ghapi.ContentGetter
}

type clientFactory func(ctx context.Context, s config.Settings) (client, error)

// NewCmd returns the `metacheck run` command.
func NewCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Validate the metadata files changed by a pull request",
		Long: `Validate every metadata file changed by a pull request.

The first invalid file is reported as a comment on the pull request and
fails the run. The pull request number defaults to $PR_NUMBER and the token
is read from $GH_TOKEN, $GITHUB_TOKEN or the gh CLI configuration.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd.Context(), o, config.OSEnv(), newClient, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "Path to config file (.cue)")
	f.IntVar(&o.flags.PullRequest, "pr", 0, "Pull request number (default $PR_NUMBER)")
	f.StringVar(&o.flags.Repository, "repo", "", "Repository of the pull request, as [HOST/]OWNER/NAME")
	f.StringVar(&o.flags.APIURL, "api-url", "", "REST API base URL (default $GITHUB_API_URL)")
	f.StringVar(&o.flags.Root, "root", "", "Working tree the metadata files are read from")
	f.StringVar(&o.flags.Source, "source", "", "Where metadata files are read: worktree, git or api")
	f.StringVar(&o.flags.Revision, "rev", "", "Git revision read by the git source")
	f.StringVarP(&o.flags.Output, "output", "o", "", "Report format: json, yaml or none")
	f.BoolVar(&o.flags.NoComment, "no-comment", false, "Do not comment on the pull request")
	return cmd
}

func newClient(ctx context.Context, s config.Settings) (client, error) {
	return ghapi.NewClient(ctx, ghapi.Options{Token: s.Token, BaseURL: apiBaseURL(s)})
}

// apiBaseURL returns the configured API URL, or the Enterprise endpoint of
// hosts other than github.com.
func apiBaseURL(s config.Settings) string {
	if s.APIURL != "" || s.Host == "" || strings.EqualFold(s.Host, "github.com") {
		return s.APIURL
	}
	return "https://" + s.Host + "/api/v3/"
}

func execute(ctx context.Context, o options, env config.Env, newAPI clientFactory, out io.Writer) error {
	var file config.File
	if o.configPath != "" {
		f, err := config.Load(o.configPath)
		if err != nil {
			return exit.Wrap(exit.Usage, err)
		}
		file = f
	}
	s, err := config.Resolve(file, o.flags, env)
	if err != nil {
		return exit.Wrap(exit.Usage, err)
	}

	api, err := newAPI(ctx, s)
	if err != nil {
		return exit.Wrap(exit.Failed, err)
	}
	_, err = executePipeline(ctx, o.configPath, s, api, out)
	return exit.Wrap(exit.Failed, err)
}
