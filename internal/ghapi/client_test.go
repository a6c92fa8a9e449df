package ghapi_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jenkins-infra/metacheck/internal/ghapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *ghapi.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c, err := ghapi.NewClient(context.Background(), ghapi.Options{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

var repo = ghapi.Repo{Owner: "jenkins-infra", Name: "metadata-plugin-modernizer"}

func TestParseRepo(t *testing.T) {
	r, err := ghapi.ParseRepo("acme/plugin")
	require.NoError(t, err)
	assert.Equal(t, ghapi.Repo{Owner: "acme", Name: "plugin"}, r)
	assert.Equal(t, "acme/plugin", r.String())

	for _, bad := range []string{"", "acme", "/plugin", "acme/", "acme/nested/plugin"} {
		_, err := ghapi.ParseRepo(bad)
		assert.ErrorIs(t, err, ghapi.ErrInvalidRepo, bad)
	}
}

func TestPullRequestStatus(t *testing.T) {
	assert.Equal(t, "open", ghapi.PullRequest{State: "open"}.Status())
	assert.Equal(t, "closed", ghapi.PullRequest{State: "closed"}.Status())
	assert.Equal(t, "merged", ghapi.PullRequest{State: "closed", Merged: true}.Status())
}

func TestClient_GetPullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/jenkins-infra/metadata-plugin-modernizer/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(t, w, map[string]any{
			"number":   7,
			"state":    "closed",
			"merged":   true,
			"html_url": "https://github.com/jenkins-infra/metadata-plugin-modernizer/pull/7",
			"head":     map[string]any{"sha": "abc123"},
		})
	})
	c := newTestClient(t, mux)

	pr, err := c.GetPullRequest(context.Background(), repo, 7)
	require.NoError(t, err)
	assert.Equal(t, ghapi.PullRequest{
		Number:  7,
		State:   "closed",
		Merged:  true,
		HeadSHA: "abc123",
		HTMLURL: "https://github.com/jenkins-infra/metadata-plugin-modernizer/pull/7",
	}, pr)
	assert.Equal(t, "merged", pr.Status())
}

func TestClient_GetPullRequest_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/jenkins-infra/metadata-plugin-modernizer/pulls/8", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	c := newTestClient(t, mux)

	_, err := c.GetPullRequest(context.Background(), repo, 8)
	require.Error(t, err)
}

func TestClient_ListPullRequestFiles_Paginates(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/jenkins-infra/metadata-plugin-modernizer/pulls/3/files", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		switch r.URL.Query().Get("page") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/jenkins-infra/metadata-plugin-modernizer/pulls/3/files?per_page=100&page=2>; rel="next"`, srvURL))
			writeJSON(t, w, []map[string]any{{"filename": "a/modernization-metadata/1.json"}, {"filename": "README.md"}})
		case "2":
			writeJSON(t, w, []map[string]any{{"filename": "b/modernization-metadata/2.json"}})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	srvURL = srv.URL
	c, err := ghapi.NewClient(context.Background(), ghapi.Options{BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)

	files, err := c.ListPullRequestFiles(context.Background(), repo, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"a/modernization-metadata/1.json",
		"README.md",
		"b/modernization-metadata/2.json",
	}, files)
}

func TestClient_GetRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/acme-plugin", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"full_name": "acme/acme-plugin"})
	})
	mux.HandleFunc("/repos/acme/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	c := newTestClient(t, mux)

	require.NoError(t, c.GetRepository(context.Background(), ghapi.Repo{Owner: "acme", Name: "acme-plugin"}))
	require.Error(t, c.GetRepository(context.Background(), ghapi.Repo{Owner: "acme", Name: "missing"}))
}

func TestClient_CreateComment(t *testing.T) {
	var got map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/jenkins-infra/metadata-plugin-modernizer/issues/5/comments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(b, &got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{"id": 1, "body": got["body"]}))
	})
	c := newTestClient(t, mux)

	require.NoError(t, c.CreateComment(context.Background(), repo, 5, "Unknown migrationId 'x' in a.json"))
	assert.Equal(t, "Unknown migrationId 'x' in a.json", got["body"])
}

func TestClient_GetFileContent(t *testing.T) {
	content := `{"pluginName":"acme-plugin"}`
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/jenkins-infra/metadata-plugin-modernizer/contents/acme/modernization-metadata/a.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc123", r.URL.Query().Get("ref"))
		writeJSON(t, w, map[string]any{
			"type":     "file",
			"encoding": "base64",
			"path":     "acme/modernization-metadata/a.json",
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
	})
	c := newTestClient(t, mux)

	b, err := c.GetFileContent(context.Background(), repo, "acme/modernization-metadata/a.json", "abc123")
	require.NoError(t, err)
	assert.Equal(t, content, string(b))
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := ghapi.NewClient(context.Background(), ghapi.Options{BaseURL: "://bad"})
	require.Error(t, err)
}
