// Package config resolves metacheck settings from flags, the environment and
// an optional CUE configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/gobwas/glob"
	"github.com/jenkins-infra/metacheck/internal/ghapi"
	"github.com/jenkins-infra/metacheck/internal/source"
)

// Defaults applied when neither flags, environment nor config file set a value.
const (
	DefaultRepository   = "jenkins-infra/metadata-plugin-modernizer"
	DefaultMetadataGlob = "**/modernization-metadata/**.json"
	DefaultRevision     = "HEAD"
	DefaultRoot         = "."
)

// Output formats of the run report.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputNone = "none"
)

// Environment variables read by Resolve.
const (
	EnvPRNumber = "PR_NUMBER"
	EnvAPIURL   = "GITHUB_API_URL"
)

var (
	// ErrMissingToken is returned when no API token can be found.
	ErrMissingToken = errors.New("GitHub token is not found")
	// ErrMissingPRNumber is returned when no pull request number is given.
	ErrMissingPRNumber = errors.New("missing pull request number")
	// ErrInvalidPRNumber is returned when the pull request number is not a positive integer.
	ErrInvalidPRNumber = errors.New("invalid pull request number")
	// ErrInvalidConfig is returned for malformed configuration values.
	ErrInvalidConfig = errors.New("invalid config")
)

// Flags are the command line values. Zero values mean "not set".
type Flags struct {
	Repository  string
	PullRequest int
	APIURL      string
	Source      string
	Revision    string
	Root        string
	Output      string
	NoComment   bool
}

// Env gives access to the process environment.
type Env struct {
	LookupEnv    func(key string) (string, bool)
	TokenForHost func(host string) (token string, source string)
}

// OSEnv reads the real environment. Tokens are looked up the way the gh CLI
// does: GH_TOKEN, GITHUB_TOKEN, then the gh configuration.
func OSEnv() Env {
	return Env{LookupEnv: os.LookupEnv, TokenForHost: auth.TokenForHost}
}

// Settings is the resolved configuration of a run.
type Settings struct {
	Repository   ghapi.Repo `json:"repository"`
	Host         string     `json:"host"`
	PullRequest  int        `json:"pullRequest"`
	Token        string     `json:"-"`
	TokenSource  string     `json:"-"`
	APIURL       string     `json:"apiURL,omitempty"`
	MetadataGlob string     `json:"metadataGlob"`
	Source       string     `json:"source"`
	Revision     string     `json:"revision,omitempty"`
	Root         string     `json:"root"`
	Output       string     `json:"output"`
	Comment      bool       `json:"comment"`
}

// Resolve merges flags, environment and file values. Flags win over the
// environment, which wins over the file. The token is checked before
// anything else.
func Resolve(file File, flags Flags, env Env) (Settings, error) {
	var s Settings

	repoRef := firstNonEmpty(flags.Repository, file.Repository, DefaultRepository)
	r, err := repository.Parse(repoRef)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: repository %q: %v", ErrInvalidConfig, repoRef, err)
	}
	s.Repository = ghapi.Repo{Owner: r.Owner, Name: r.Name}
	s.Host = r.Host

	s.Token, s.TokenSource = env.TokenForHost(s.Host)
	if s.Token == "" {
		return Settings{}, ErrMissingToken
	}

	if s.PullRequest, err = resolvePRNumber(flags.PullRequest, env); err != nil {
		return Settings{}, err
	}

	envAPIURL, _ := env.LookupEnv(EnvAPIURL)
	s.APIURL = firstNonEmpty(flags.APIURL, envAPIURL, file.APIURL)

	s.MetadataGlob = firstNonEmpty(file.MetadataGlob, DefaultMetadataGlob)
	if _, err := glob.Compile(s.MetadataGlob, '/'); err != nil {
		return Settings{}, fmt.Errorf("%w: metadataGlob %q: %v", ErrInvalidConfig, s.MetadataGlob, err)
	}

	s.Source = firstNonEmpty(flags.Source, file.Source, source.KindWorktree)
	if !source.IsKind(s.Source) {
		return Settings{}, fmt.Errorf("%w: source %q (supported: %s, %s, %s)", ErrInvalidConfig, s.Source, source.KindWorktree, source.KindGit, source.KindAPI)
	}
	if s.Source == source.KindGit {
		s.Revision = firstNonEmpty(flags.Revision, file.Revision, DefaultRevision)
	}
	s.Root = firstNonEmpty(flags.Root, DefaultRoot)

	s.Output = firstNonEmpty(flags.Output, file.Output, OutputJSON)
	switch s.Output {
	case OutputJSON, OutputYAML, OutputNone:
	default:
		return Settings{}, fmt.Errorf("%w: output %q (supported: %s, %s, %s)", ErrInvalidConfig, s.Output, OutputJSON, OutputYAML, OutputNone)
	}

	s.Comment = !flags.NoComment && (file.Comment == nil || *file.Comment)
	return s, nil
}

func resolvePRNumber(flag int, env Env) (int, error) {
	if flag > 0 {
		return flag, nil
	}
	if flag < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPRNumber, flag)
	}
	v, ok := env.LookupEnv(EnvPRNumber)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return 0, ErrMissingPRNumber
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPRNumber, v)
	}
	return n, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
