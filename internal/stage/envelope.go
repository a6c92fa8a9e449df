package stage

import (
	"github.com/jenkins-infra/metacheck/internal/config"
	"github.com/jenkins-infra/metacheck/internal/ghapi"
)

// Meta holds run-level state with deterministic JSON field order.
type Meta struct {
	Stage       string             `json:"stage,omitempty"`
	ConfigPath  string             `json:"configPath,omitempty"`
	Settings    *config.Settings   `json:"settings,omitempty"`
	PullRequest *ghapi.PullRequest `json:"pullRequest,omitempty"`
	// ChangedFiles counts every file of the pull request, matching or not.
	ChangedFiles int `json:"changedFiles"`
}

// Envelope is the JSON-serializable contract between stages.
// Field order is stable to keep JSON deterministic in tests.
type Envelope struct {
	Records []Record `json:"records"`
	Meta    *Meta    `json:"meta,omitempty"`
}

// NewEnvelope returns the initial envelope of a run.
func NewEnvelope(configPath string, s config.Settings) Envelope {
	return Envelope{
		Records: []Record{},
		Meta:    &Meta{ConfigPath: configPath, Settings: &s},
	}
}

func settingsOf(in Envelope) (config.Settings, error) {
	if in.Meta == nil || in.Meta.Settings == nil {
		return config.Settings{}, ErrMissingSettings
	}
	return *in.Meta.Settings, nil
}
