// Package ghapi is the narrow view of the GitHub API used to validate
// metadata pull requests.
package ghapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRepo is returned when a repository reference is not owner/name.
var ErrInvalidRepo = errors.New("invalid repository reference")

// Repo identifies a repository by owner and name.
type Repo struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// ParseRepo parses an owner/name reference. Any other shape is rejected.
func ParseRepo(s string) (Repo, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, fmt.Errorf("%w: %q", ErrInvalidRepo, s)
	}
	return Repo{Owner: owner, Name: name}, nil
}

// PullRequest is the subset of pull request fields the validator reads.
type PullRequest struct {
	Number  int    `json:"number"`
	State   string `json:"state"`
	Merged  bool   `json:"merged"`
	HeadSHA string `json:"headSha,omitempty"`
	HTMLURL string `json:"htmlUrl,omitempty"`
}

// Status returns "merged" for merged pull requests and the raw open/closed
// state otherwise.
func (p PullRequest) Status() string {
	if p.Merged {
		return "merged"
	}
	return p.State
}

// API is the set of hosted-repository operations the validator depends on.
type API interface {
	// GetPullRequest fetches a pull request by number.
	GetPullRequest(ctx context.Context, repo Repo, number int) (PullRequest, error)
	// ListPullRequestFiles returns the names of the files changed by a pull
	// request, in API order.
	ListPullRequestFiles(ctx context.Context, repo Repo, number int) ([]string, error)
	// GetRepository returns an error when the repository cannot be fetched.
	GetRepository(ctx context.Context, repo Repo) error
	// CreateComment posts an issue comment on a pull request.
	CreateComment(ctx context.Context, repo Repo, number int, body string) error
}

// ContentGetter reads a file of a repository at a given ref.
type ContentGetter interface {
	GetFileContent(ctx context.Context, repo Repo, path, ref string) ([]byte, error)
}
