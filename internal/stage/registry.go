package stage

import (
	"context"
	"io"

	"github.com/jenkins-infra/metacheck/internal/ghapi"
	"github.com/jenkins-infra/metacheck/internal/source"
)

// SourceOpener returns the Source metadata files are read from. It receives
// the triggering pull request so API sources can read at its head.
type SourceOpener func(ctx context.Context, pr ghapi.PullRequest) (source.Source, error)

// Deps are the collaborators stages use to reach the outside world.
type Deps struct {
	API        ghapi.API
	OpenSource SourceOpener
	Out        io.Writer
}

// Runner executes a stage.
type Runner func(ctx context.Context, in Envelope, deps Deps) (Envelope, error)

var registry = map[string]Runner{}

// Register adds a stage runner.
func Register(name string, r Runner) {
	registry[name] = r
}

// Run executes a registered stage by name and records it as the last stage
// run in the envelope meta.
func Run(ctx context.Context, name string, in Envelope, deps Deps) (Envelope, error) {
	r, ok := registry[name]
	if !ok {
		return Envelope{}, ErrUnknown{name: name}
	}
	out, err := r(ctx, in, deps)
	if err != nil {
		return out, err
	}
	if out.Meta != nil {
		out.Meta.Stage = name
	}
	return out, nil
}

// ErrUnknown is returned when a stage is not found.
type ErrUnknown struct{ name string }

func (e ErrUnknown) Error() string { return "unknown stage: " + e.name }
