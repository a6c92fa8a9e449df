package ghapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v58/github"
	"github.com/jenkins-infra/metacheck/internal/buildinfo"
	"github.com/ubuntu/decorate"
	"golang.org/x/oauth2"
)

const filesPerPage = 100

// Options configures a Client.
type Options struct {
	// Token is the API access token.
	Token string
	// BaseURL overrides the REST API endpoint, e.g. for GitHub Enterprise.
	BaseURL string
	// HTTPClient replaces the token-authenticated client. Token is ignored
	// when it is set.
	HTTPClient *http.Client
}

// Client implements API and ContentGetter on the GitHub REST API.
type Client struct {
	gh *github.Client
}

// NewClient returns a Client authenticated with opts.Token.
func NewClient(ctx context.Context, opts Options) (c *Client, err error) {
	defer decorate.OnError(&err, "can't create GitHub client")

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		))
	}
	gh := github.NewClient(httpClient)
	gh.UserAgent = "metacheck/" + buildinfo.Summary()

	if opts.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", opts.BaseURL, err)
		}
		gh.BaseURL = base
	}
	return &Client{gh: gh}, nil
}

// GetPullRequest implements API.
func (c *Client) GetPullRequest(ctx context.Context, repo Repo, number int) (PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, repo.Owner, repo.Name, number)
	if err != nil {
		return PullRequest{}, err
	}
	return PullRequest{
		Number:  pr.GetNumber(),
		State:   pr.GetState(),
		Merged:  pr.GetMerged(),
		HeadSHA: pr.GetHead().GetSHA(),
		HTMLURL: pr.GetHTMLURL(),
	}, nil
}

// ListPullRequestFiles implements API, following pagination.
func (c *Client) ListPullRequestFiles(ctx context.Context, repo Repo, number int) ([]string, error) {
	var names []string
	opts := &github.ListOptions{PerPage: filesPerPage}
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, repo.Owner, repo.Name, number, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			names = append(names, f.GetFilename())
		}
		if resp == nil || resp.NextPage == 0 {
			return names, nil
		}
		opts.Page = resp.NextPage
	}
}

// GetRepository implements API.
func (c *Client) GetRepository(ctx context.Context, repo Repo) error {
	_, _, err := c.gh.Repositories.Get(ctx, repo.Owner, repo.Name)
	return err
}

// CreateComment implements API.
func (c *Client) CreateComment(ctx context.Context, repo Repo, number int, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, repo.Owner, repo.Name, number, &github.IssueComment{
		Body: github.String(body),
	})
	return err
}

// GetFileContent implements ContentGetter.
func (c *Client) GetFileContent(ctx context.Context, repo Repo, path, ref string) ([]byte, error) {
	fc, _, _, err := c.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, &github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, err
	}
	if fc == nil {
		return nil, errors.New(path + " is not a file")
	}
	s, err := fc.GetContent()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
