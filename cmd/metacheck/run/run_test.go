package run

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jenkins-infra/metacheck/internal/config"
	"github.com/jenkins-infra/metacheck/internal/ghapi"
	"github.com/jenkins-infra/metacheck/internal/stage"
	"github.com/jenkins-infra/metacheck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const metadataFile = "acme-plugin/modernization-metadata/2025-01-02T03-04-05.json"

var modernizer = ghapi.Repo{Owner: "jenkins-infra", Name: "metadata-plugin-modernizer"}

func isolateGH(t *testing.T) {
	t.Helper()
	t.Setenv("GH_CONFIG_DIR", t.TempDir())
	t.Setenv("GH_HOST", "")
}

func testEnv(vars map[string]string, token string) config.Env {
	return config.Env{
		LookupEnv: func(k string) (string, bool) {
			v, ok := vars[k]
			return v, ok
		},
		TokenForHost: func(string) (string, string) { return token, "GH_TOKEN" },
	}
}

func fakeFactory(api *testutil.FakeAPI, got *config.Settings) clientFactory {
	return func(_ context.Context, s config.Settings) (client, error) {
		if got != nil {
			*got = s
		}
		return api, nil
	}
}

func metadataJSON(t *testing.T, migrationID string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"pluginName":           "acme-plugin",
		"pluginRepository":     "https://github.com/acme/acme-plugin.git",
		"pluginVersion":        "1.2.3",
		"migrationName":        "Use Json Api Plugin",
		"migrationDescription": "Replace the bundled JSON library.",
		"tags":                 []string{"dependencies"},
		"migrationId":          migrationID,
		"migrationStatus":      "success",
		"pullRequestUrl":       "",
		"pullRequestStatus":    "",
		"dryRun":               false,
		"additions":            3,
		"deletions":            1,
		"changedFiles":         2,
		"key":                  "2025-01-02T03-04-05.json",
		"path":                 "metadata-plugin-modernizer/acme-plugin/modernization-metadata",
		"rpuBaseline":          "2.462",
	})
	require.NoError(t, err)
	return string(b)
}

func newFakeAPI() *testutil.FakeAPI {
	api := testutil.NewFakeAPI()
	api.AddPullRequest(modernizer, ghapi.PullRequest{Number: 7, State: "open", HeadSHA: "cafe"}, "README.md", metadataFile)
	api.Repos["acme/acme-plugin"] = true
	return api
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ec interface{ ExitCode() int }
	require.True(t, errors.As(err, &ec), "error %v has no exit code", err)
	return ec.ExitCode()
}

func TestExecute_ValidPullRequest(t *testing.T) {
	isolateGH(t)
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{metadataFile: metadataJSON(t, "io.jenkins.tools.pluginmodernizer.UseJsonApiPlugin")})
	api := newFakeAPI()

	var out bytes.Buffer
	o := options{flags: config.Flags{Root: root}}
	err := execute(context.Background(), o, testEnv(map[string]string{config.EnvPRNumber: "7"}, "t0k"), fakeFactory(api, nil), &out)
	require.NoError(t, err)
	assert.Empty(t, api.Comments)

	var env stage.Envelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	require.Len(t, env.Records, 1)
	assert.Equal(t, stage.StatusValid, env.Records[0].Status)
	assert.Equal(t, 2, env.Meta.ChangedFiles)
	assert.NotContains(t, out.String(), "t0k")
}

func TestExecute_InvalidFileFailsWithComment(t *testing.T) {
	isolateGH(t)
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{metadataFile: metadataJSON(t, "io.jenkins.tools.pluginmodernizer.Unknown")})
	api := newFakeAPI()

	var out bytes.Buffer
	o := options{flags: config.Flags{Root: root, PullRequest: 7}}
	err := execute(context.Background(), o, testEnv(nil, "t0k"), fakeFactory(api, nil), &out)
	require.ErrorIs(t, err, stage.ErrUnknownMigration)
	assert.Equal(t, 1, exitCode(t, err))
	assert.EqualError(t, err, "Unknown migrationId 'io.jenkins.tools.pluginmodernizer.Unknown' in "+metadataFile)
	require.Len(t, api.Comments, 1)
	assert.Equal(t, 7, api.Comments[0].Number)
	assert.Empty(t, out.String())
}

func TestExecute_ConfigurationErrors(t *testing.T) {
	isolateGH(t)
	badConfig := filepath.Join(t.TempDir(), "metacheck.cue")
	require.NoError(t, os.WriteFile(badConfig, []byte(`configVersion: "9"`), 0o644))

	tests := []struct {
		name  string
		o     options
		env   config.Env
		isErr error
	}{
		{name: "missing token", o: options{flags: config.Flags{PullRequest: 7}}, env: testEnv(nil, ""), isErr: config.ErrMissingToken},
		{name: "missing pull request", env: testEnv(nil, "t0k"), isErr: config.ErrMissingPRNumber},
		{name: "unsupported config version", o: options{configPath: badConfig, flags: config.Flags{PullRequest: 7}}, env: testEnv(nil, "t0k")},
		{name: "bad output", o: options{flags: config.Flags{PullRequest: 7, Output: "xml"}}, env: testEnv(nil, "t0k"), isErr: config.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			err := execute(context.Background(), tt.o, tt.env, fakeFactory(api, nil), &bytes.Buffer{})
			require.Error(t, err)
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
			assert.Equal(t, 2, exitCode(t, err))
			assert.Empty(t, api.Calls)
		})
	}
}

func TestExecute_ConfigFileAndFlags(t *testing.T) {
	isolateGH(t)
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{metadataFile: metadataJSON(t, "io.jenkins.tools.pluginmodernizer.Unknown")})
	cfg := filepath.Join(t.TempDir(), "metacheck.cue")
	require.NoError(t, os.WriteFile(cfg, []byte("configVersion: \"1\"\noutput: \"yaml\"\ncomment: false\n"), 0o644))
	api := newFakeAPI()

	var got config.Settings
	o := options{configPath: cfg, flags: config.Flags{Root: root, PullRequest: 7}}
	err := execute(context.Background(), o, testEnv(nil, "t0k"), fakeFactory(api, &got), &bytes.Buffer{})
	require.ErrorIs(t, err, stage.ErrUnknownMigration)
	assert.Empty(t, api.Comments)
	assert.Equal(t, config.OutputYAML, got.Output)
	assert.False(t, got.Comment)
}

func TestExecute_ClientError(t *testing.T) {
	isolateGH(t)
	factory := func(context.Context, config.Settings) (client, error) { return nil, errors.New("no client") }
	err := execute(context.Background(), options{flags: config.Flags{PullRequest: 7}}, testEnv(nil, "t0k"), factory, &bytes.Buffer{})
	require.EqualError(t, err, "no client")
	assert.Equal(t, 1, exitCode(t, err))
}

func TestAPIBaseURL(t *testing.T) {
	assert.Equal(t, "", apiBaseURL(config.Settings{Host: "github.com"}))
	assert.Equal(t, "https://api.example.com", apiBaseURL(config.Settings{Host: "github.com", APIURL: "https://api.example.com"}))
	assert.Equal(t, "https://ghe.example.com/api/v3/", apiBaseURL(config.Settings{Host: "ghe.example.com"}))
}

func TestNewCmd_Flags(t *testing.T) {
	cmd := NewCmd()
	for _, name := range []string{"config", "pr", "repo", "api-url", "root", "source", "rev", "output", "no-comment"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
