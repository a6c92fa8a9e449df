package stage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gobwas/glob"
)

// DiscoverMetadataFiles is the stage listing the metadata files changed by
// the triggering pull request.
const DiscoverMetadataFiles = "discover-metadata-files"

func discoverMetadataFilesRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	s, err := settingsOf(in)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", DiscoverMetadataFiles, err)
	}
	g, err := glob.Compile(s.MetadataGlob, '/')
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: metadataGlob %q: %w", DiscoverMetadataFiles, s.MetadataGlob, err)
	}
	files, err := deps.API.ListPullRequestFiles(ctx, s.Repository, s.PullRequest)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: list files of #%d: %s",
			DiscoverMetadataFiles, s.PullRequest, sanitizeErrorMessage(err.Error()))
	}

	records := make([]Record, 0, len(files))
	for _, f := range files {
		if !g.Match(f) {
			slog.Debug("skipping file", "file", f)
			continue
		}
		records = append(records, Record{Locator: f, Status: StatusPending})
	}
	slog.Info("discovered metadata files", "changed", len(files), "metadata", len(records))

	out := in
	meta := *in.Meta
	meta.ChangedFiles = len(files)
	out.Meta = &meta
	out.Records = records
	return out, nil
}

func init() { Register(DiscoverMetadataFiles, discoverMetadataFilesRunner) }
