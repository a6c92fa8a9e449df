package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jenkins-infra/metacheck/internal/ghapi"
)

// ValidateMetadata is the stage checking each discovered metadata file in
// order. The first failing file is reported on the pull request and ends
// the run.
const ValidateMetadata = "validate-metadata"

func validateMetadataRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	s, err := settingsOf(in)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", ValidateMetadata, err)
	}
	if len(in.Records) == 0 {
		return in, nil
	}

	var head ghapi.PullRequest
	if in.Meta.PullRequest != nil {
		head = *in.Meta.PullRequest
	}
	src, err := deps.OpenSource(ctx, head)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", ValidateMetadata, err)
	}

	out := in
	out.Records = append([]Record(nil), in.Records...)
	for i := range out.Records {
		r := &out.Records[i]
		data, err := src.Read(ctx, r.Locator)
		if err != nil {
			return out, fmt.Errorf("%s: read %s: %w", ValidateMetadata, r.Locator, err)
		}

		rec, err := checkFile(ctx, deps.API, r.Locator, data)
		r.Plugin = rec.PluginName
		r.MigrationID = rec.MigrationID
		if err == nil {
			r.Status = StatusValid
			slog.Info("metadata file is valid", "file", r.Locator)
			continue
		}

		var ferr *FileError
		if !errors.As(err, &ferr) {
			return out, fmt.Errorf("%s: %s: %w", ValidateMetadata, r.Locator, err)
		}
		r.Status = StatusInvalid
		r.Error = ferr.Comment
		slog.Info("metadata file is invalid", "file", r.Locator, "reason", ferr.Kind)

		if !s.Comment {
			return out, ferr
		}
		if cerr := deps.API.CreateComment(ctx, s.Repository, s.PullRequest, ferr.Comment); cerr != nil {
			return out, errors.Join(ferr, fmt.Errorf("post comment on #%d: %w", s.PullRequest, cerr))
		}
		return out, ferr
	}
	return out, nil
}

func init() { Register(ValidateMetadata, validateMetadataRunner) }
