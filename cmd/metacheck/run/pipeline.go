package run

import (
	"context"
	"io"

	"github.com/jenkins-infra/metacheck/internal/config"
	"github.com/jenkins-infra/metacheck/internal/ghapi"
	"github.com/jenkins-infra/metacheck/internal/source"
	"github.com/jenkins-infra/metacheck/internal/stage"
)

var pipeline = []string{
	stage.ResolvePullRequest,
	stage.DiscoverMetadataFiles,
	stage.ValidateMetadata,
	stage.WriteOutput,
}

// executePipeline runs the fixed pipeline of `metacheck run`.
func executePipeline(ctx context.Context, cfgPath string, s config.Settings, api client, out io.Writer) (stage.Envelope, error) {
	deps := stage.Deps{
		API:        api,
		OpenSource: sourceOpener(s, api),
		Out:        out,
	}
	return runStages(ctx, stage.NewEnvelope(cfgPath, s), pipeline, deps)
}

// runStages executes the provided list of stage names in order.
func runStages(ctx context.Context, in stage.Envelope, stages []string, deps stage.Deps) (stage.Envelope, error) {
	out := in
	var err error
	for _, name := range stages {
		out, err = stage.Run(ctx, name, out, deps)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func sourceOpener(s config.Settings, getter ghapi.ContentGetter) stage.SourceOpener {
	return func(_ context.Context, pr ghapi.PullRequest) (source.Source, error) {
		return source.Open(source.Options{
			Kind:     s.Source,
			Root:     s.Root,
			Revision: s.Revision,
			Getter:   getter,
			Repo:     s.Repository,
			Ref:      pr.HeadSHA,
		})
	}
}
