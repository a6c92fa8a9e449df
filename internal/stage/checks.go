package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jenkins-infra/metacheck/internal/ghapi"
	"github.com/jenkins-infra/metacheck/internal/metadata"
)

// CheckOffline runs the checks that need no API access: schema conformance
// and the migration allow-list.
func CheckOffline(file string, data []byte) (metadata.Record, error) {
	rec, err := metadata.Decode(data)
	if err != nil {
		var serr *metadata.SchemaError
		if !errors.As(err, &serr) {
			return metadata.Record{}, err
		}
		return metadata.Record{}, &FileError{
			File:    file,
			Kind:    ErrInvalidMetadata,
			Comment: fmt.Sprintf("Invalid metadata in %s: %s", file, serr.Message),
		}
	}
	if !metadata.IsKnownMigration(rec.MigrationID) {
		return rec, &FileError{
			File:    file,
			Kind:    ErrUnknownMigration,
			Comment: fmt.Sprintf("Unknown migrationId '%s' in %s", rec.MigrationID, file),
		}
	}
	return rec, nil
}

// checkFile runs every check on one file, stopping at the first failure.
func checkFile(ctx context.Context, api ghapi.API, file string, data []byte) (metadata.Record, error) {
	rec, err := CheckOffline(file, data)
	if err != nil {
		return rec, err
	}
	if err := checkRepository(ctx, api, file, rec.PluginRepository); err != nil {
		return rec, err
	}
	return rec, checkPullRequest(ctx, api, file, rec)
}

func checkRepository(ctx context.Context, api ghapi.API, file, url string) error {
	invalid := &FileError{
		File:    file,
		Kind:    ErrInvalidRepository,
		Comment: fmt.Sprintf("Invalid plugin repository '%s' in %s", url, file),
	}
	repo, err := ghapi.ParseRepo(metadata.RepositoryRef(url))
	if err != nil {
		slog.Debug("unusable repository reference", "file", file, "url", url, "error", err)
		return invalid
	}
	if err := api.GetRepository(ctx, repo); err != nil {
		slog.Debug("repository lookup failed", "file", file, "repository", repo.String(), "error", err)
		return invalid
	}
	return nil
}

func checkPullRequest(ctx context.Context, api ghapi.API, file string, rec metadata.Record) error {
	url := rec.PullRequestURL
	if url == "" {
		return nil
	}
	unavailable := &FileError{
		File:    file,
		Kind:    ErrPullRequestUnavailable,
		Comment: fmt.Sprintf("Unable to fetch PR '%s' in %s", url, file),
	}
	ref, err := metadata.ParsePullRequestURL(url)
	switch {
	case errors.Is(err, metadata.ErrNotPullRequestURL):
		return &FileError{
			File:    file,
			Kind:    ErrInvalidPullRequestURL,
			Comment: fmt.Sprintf("Invalid PR URL '%s' in %s", url, file),
		}
	case err != nil:
		slog.Debug("unusable pull request number", "file", file, "url", url, "error", err)
		return unavailable
	}
	pr, err := api.GetPullRequest(ctx, ghapi.Repo{Owner: ref.Owner, Name: ref.Repo}, ref.Number)
	if err != nil {
		slog.Debug("pull request lookup failed", "file", file, "url", url, "error", err)
		return unavailable
	}
	actual := pr.Status()
	if rec.PullRequestStatus != "" && rec.PullRequestStatus != actual {
		return &FileError{
			File: file,
			Kind: ErrStatusMismatch,
			Comment: fmt.Sprintf("PR status mismatch in %s: metadata says '%s', but actual status is '%s'",
				file, rec.PullRequestStatus, actual),
		}
	}
	return nil
}
