package stage

import (
	"context"
	"fmt"

	"github.com/jenkins-infra/metacheck/internal/config"
	"github.com/jenkins-infra/metacheck/internal/report"
)

// WriteOutput is the stage rendering the envelope as the run report.
const WriteOutput = "write-output"

func writeOutputRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	s, err := settingsOf(in)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", WriteOutput, err)
	}
	if s.Output == config.OutputNone || deps.Out == nil {
		return in, nil
	}
	env := in
	meta := *in.Meta
	meta.Stage = WriteOutput
	env.Meta = &meta
	if err := report.Write(deps.Out, s.Output, env); err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", WriteOutput, err)
	}
	return in, nil
}

func init() { Register(WriteOutput, writeOutputRunner) }
