package metadata

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const githubURLPrefix = "https://github.com/"

// ErrNotPullRequestURL is returned for URLs that do not point to a pull request.
var ErrNotPullRequestURL = errors.New("not a pull request URL")

var pullRequestURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/pull/([0-9]+)`)

// PullRequestRef points to a pull request on a plugin repository.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// RepositoryRef returns the owner/name reference of a plugin repository URL
// such as https://github.com/jenkinsci/git-plugin.git.
func RepositoryRef(pluginRepository string) string {
	ref := strings.TrimPrefix(pluginRepository, githubURLPrefix)
	return strings.TrimSuffix(ref, ".git")
}

// ParsePullRequestURL extracts the pull request reference from a URL of the
// form https://github.com/{owner}/{repo}/pull/{number}. Any other shape
// yields ErrNotPullRequestURL; a well-formed URL whose number does not fit an
// int yields a different error, since no pull request can have it.
func ParsePullRequestURL(u string) (PullRequestRef, error) {
	m := pullRequestURLPattern.FindStringSubmatch(u)
	if m == nil {
		return PullRequestRef{}, fmt.Errorf("%w: %q", ErrNotPullRequestURL, u)
	}
	n, err := strconv.Atoi(m[3])
	if err != nil {
		return PullRequestRef{}, fmt.Errorf("pull request number %s: %w", m[3], err)
	}
	return PullRequestRef{Owner: m[1], Repo: m[2], Number: n}, nil
}
