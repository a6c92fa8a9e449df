package testutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/jenkins-infra/metacheck/internal/ghapi"
)

// ErrNotFound is returned by FakeAPI for unknown repositories and pull requests.
var ErrNotFound = errors.New("404 Not Found")

// Comment is a comment recorded by FakeAPI.
type Comment struct {
	Repo   ghapi.Repo
	Number int
	Body   string
}

// FakeAPI is an in-memory ghapi.API and ghapi.ContentGetter.
type FakeAPI struct {
	Repos        map[string]bool
	PullRequests map[string]ghapi.PullRequest
	Files        map[string][]string
	Contents     map[string]string
	CommentErr   error

	Comments []Comment
	Calls    []string
}

// NewFakeAPI returns an empty FakeAPI.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{
		Repos:        map[string]bool{},
		PullRequests: map[string]ghapi.PullRequest{},
		Files:        map[string][]string{},
		Contents:     map[string]string{},
	}
}

func prKey(repo ghapi.Repo, number int) string {
	return fmt.Sprintf("%s#%d", repo, number)
}

// AddPullRequest registers pr on repo. The repository is registered too.
func (f *FakeAPI) AddPullRequest(repo ghapi.Repo, pr ghapi.PullRequest, files ...string) {
	f.Repos[repo.String()] = true
	f.PullRequests[prKey(repo, pr.Number)] = pr
	if len(files) > 0 {
		f.Files[prKey(repo, pr.Number)] = files
	}
}

// GetPullRequest implements ghapi.API.
func (f *FakeAPI) GetPullRequest(_ context.Context, repo ghapi.Repo, number int) (ghapi.PullRequest, error) {
	f.Calls = append(f.Calls, "GetPullRequest "+prKey(repo, number))
	pr, ok := f.PullRequests[prKey(repo, number)]
	if !ok {
		return ghapi.PullRequest{}, ErrNotFound
	}
	return pr, nil
}

// ListPullRequestFiles implements ghapi.API.
func (f *FakeAPI) ListPullRequestFiles(_ context.Context, repo ghapi.Repo, number int) ([]string, error) {
	f.Calls = append(f.Calls, "ListPullRequestFiles "+prKey(repo, number))
	if _, ok := f.PullRequests[prKey(repo, number)]; !ok {
		return nil, ErrNotFound
	}
	return append([]string(nil), f.Files[prKey(repo, number)]...), nil
}

// GetRepository implements ghapi.API.
func (f *FakeAPI) GetRepository(_ context.Context, repo ghapi.Repo) error {
	f.Calls = append(f.Calls, "GetRepository "+repo.String())
	if !f.Repos[repo.String()] {
		return ErrNotFound
	}
	return nil
}

// CreateComment implements ghapi.API.
func (f *FakeAPI) CreateComment(_ context.Context, repo ghapi.Repo, number int, body string) error {
	f.Calls = append(f.Calls, "CreateComment "+prKey(repo, number))
	if f.CommentErr != nil {
		return f.CommentErr
	}
	f.Comments = append(f.Comments, Comment{Repo: repo, Number: number, Body: body})
	return nil
}

// GetFileContent implements ghapi.ContentGetter. Contents are keyed by
// "ref:path".
func (f *FakeAPI) GetFileContent(_ context.Context, repo ghapi.Repo, path, ref string) ([]byte, error) {
	f.Calls = append(f.Calls, "GetFileContent "+repo.String()+" "+ref+":"+path)
	c, ok := f.Contents[ref+":"+path]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(c), nil
}
