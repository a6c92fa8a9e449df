package stage

import "errors"

// Kinds of metadata file failures. Use errors.Is on a *FileError.
var (
	ErrInvalidMetadata        = errors.New("invalid metadata")
	ErrUnknownMigration       = errors.New("unknown migration")
	ErrInvalidRepository      = errors.New("invalid plugin repository")
	ErrInvalidPullRequestURL  = errors.New("invalid pull request URL")
	ErrPullRequestUnavailable = errors.New("pull request unavailable")
	ErrStatusMismatch         = errors.New("pull request status mismatch")
)

// ErrMissingSettings is returned by stages run on an envelope without settings.
var ErrMissingSettings = errors.New("envelope has no settings")

// FileError is a validation failure of one metadata file. Its message is the
// comment posted on the pull request.
type FileError struct {
	File    string
	Kind    error
	Comment string
}

func (e *FileError) Error() string { return e.Comment }

func (e *FileError) Unwrap() error { return e.Kind }
