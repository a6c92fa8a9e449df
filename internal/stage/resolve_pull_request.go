package stage

import (
	"context"
	"fmt"
	"log/slog"
)

// ResolvePullRequest is the stage fetching the triggering pull request.
const ResolvePullRequest = "resolve-pull-request"

func resolvePullRequestRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	s, err := settingsOf(in)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", ResolvePullRequest, err)
	}
	pr, err := deps.API.GetPullRequest(ctx, s.Repository, s.PullRequest)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: pull request #%d on %s: %s",
			ResolvePullRequest, s.PullRequest, s.Repository, sanitizeErrorMessage(err.Error()))
	}
	slog.Debug("resolved pull request", "repository", s.Repository.String(), "number", pr.Number, "state", pr.Status(), "head", pr.HeadSHA)

	out := in
	meta := *in.Meta
	meta.PullRequest = &pr
	out.Meta = &meta
	return out, nil
}

func init() { Register(ResolvePullRequest, resolvePullRequestRunner) }
