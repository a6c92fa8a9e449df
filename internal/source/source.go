// Package source reads the content of files changed by a pull request.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/jenkins-infra/metacheck/internal/ghapi"
	"github.com/ubuntu/decorate"
)

// Source kinds accepted in configuration.
const (
	KindWorktree = "worktree"
	KindGit      = "git"
	KindAPI      = "api"
)

// ErrUnknownKind is returned by Open for unsupported kinds.
var ErrUnknownKind = errors.New("unknown source")

// Source returns the content of a repository-relative, slash-separated file.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

// IsKind reports whether k is a supported source kind.
func IsKind(k string) bool {
	switch k {
	case KindWorktree, KindGit, KindAPI:
		return true
	}
	return false
}

// Options selects and configures a Source.
type Options struct {
	Kind string
	// Root is the working tree, or any directory inside the git repository.
	Root string
	// Revision is the git revision read by the git source.
	Revision string
	// Getter, Repo and Ref configure the API source.
	Getter ghapi.ContentGetter
	Repo   ghapi.Repo
	Ref    string
}

// Open returns the Source described by opts. An empty kind means worktree.
func Open(opts Options) (Source, error) {
	switch opts.Kind {
	case "", KindWorktree:
		return Worktree{Root: opts.Root}, nil
	case KindGit:
		g, err := OpenGit(opts.Root, opts.Revision)
		if err != nil {
			return nil, err
		}
		return g, nil
	case KindAPI:
		if opts.Getter == nil {
			return nil, errors.New("api source requires a content getter")
		}
		return API{Getter: opts.Getter, Repo: opts.Repo, Ref: opts.Ref}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
}

// Worktree reads files from a checked out working tree.
type Worktree struct {
	Root string
}

// Read implements Source.
func (w Worktree) Read(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(w.Root, filepath.FromSlash(name)))
}

// Git reads files from a commit of a local repository.
type Git struct {
	commit *object.Commit
}

// OpenGit opens the repository containing root and resolves revision
// ("HEAD" when empty).
func OpenGit(root, revision string) (g *Git, err error) {
	defer decorate.OnError(&err, "can't open git source at %s", root)

	if revision == "" {
		revision = "HEAD"
	}
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", revision, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}
	return &Git{commit: commit}, nil
}

// Read implements Source.
func (g *Git) Read(_ context.Context, name string) ([]byte, error) {
	f, err := g.commit.File(name)
	if err != nil {
		return nil, fmt.Errorf("%s at %s: %w", name, g.commit.Hash, err)
	}
	s, err := f.Contents()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// API reads files through the hosted-repository API at a fixed ref.
type API struct {
	Getter ghapi.ContentGetter
	Repo   ghapi.Repo
	Ref    string
}

// Read implements Source.
func (a API) Read(ctx context.Context, name string) ([]byte, error) {
	return a.Getter.GetFileContent(ctx, a.Repo, name, a.Ref)
}
