package redmine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

const issueXML = `<?xml version="1.0" encoding="UTF-8"?>
<issue>
  <id>42</id>
  <project id="1" name="core"/>
  <tracker id="1" name="Bug"/>
  <status id="2" name="In Progress"/>
  <author id="3" name="Alex"/>
  <assigned_to id="4" name="Sam"/>
  <subject>fix bug</subject>
  <description>It crashes.</description>
</issue>`

func TestClient_FetchIssue(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(issueXML))
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.Client(), nil)
	issue, err := client.FetchIssue(context.Background(), domain.ResolvedConfig{BaseURL: server.URL + "/", APIKey: "s3cret"}, 42)

	require.NoError(t, err)
	assert.Equal(t, "/issues/42.xml", gotPath)
	assert.Equal(t, "s3cret", gotKey)
	assert.Equal(t, 42, issue.ID)
	assert.Equal(t, "fix bug", issue.Subject)
	assert.Equal(t, "core", issue.Project)
	assert.Equal(t, "Bug", issue.Tracker)
	assert.Equal(t, "In Progress", issue.Status)
	assert.Equal(t, "Alex", issue.Author)
	assert.Equal(t, "Sam", issue.AssignedTo)
	assert.Equal(t, "It crashes.", issue.Description)
	assert.Equal(t, server.URL+"/issues/42", issue.URL)
}

func TestClient_FetchIssue_SubPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(issueXML))
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.Client(), nil)
	_, err := client.FetchIssue(context.Background(), domain.ResolvedConfig{BaseURL: server.URL + "/redmine", APIKey: "k"}, 42)

	require.NoError(t, err)
	assert.Equal(t, "/redmine/issues/42.xml", gotPath)
}

func TestClient_FetchIssue_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.Client(), nil)
	_, err := client.FetchIssue(context.Background(), domain.ResolvedConfig{BaseURL: server.URL, APIKey: "k"}, 1)

	require.ErrorIs(t, err, domain.ErrFetch)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_FetchIssue_NetworkErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClientWithHTTPClient(&http.Client{}, nil)
	_, err := client.FetchIssue(context.Background(), domain.ResolvedConfig{BaseURL: baseURL, APIKey: "topsecret"}, 1)

	require.ErrorIs(t, err, domain.ErrFetch)
	assert.NotContains(t, err.Error(), "topsecret")
}

func TestClient_FetchIssue_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not xml", body: "<html"},
		{name: "wrong root", body: "<project><id>1</id></project>"},
		{name: "missing id", body: "<issue><subject>x</subject></issue>"},
		{name: "missing subject", body: "<issue><id>1</id></issue>"},
		{name: "non-numeric id", body: "<issue><id>abc</id><subject>x</subject></issue>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClientWithHTTPClient(server.Client(), nil)
			_, err := client.FetchIssue(context.Background(), domain.ResolvedConfig{BaseURL: server.URL, APIKey: "k"}, 1)

			assert.ErrorIs(t, err, domain.ErrParse)
		})
	}
}

func TestClient_FetchIssue_WarnsOnPlainHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(issueXML))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewClientWithHTTPClient(server.Client(), logger)
	_, err := client.FetchIssue(context.Background(), domain.ResolvedConfig{BaseURL: server.URL, APIKey: "k"}, 42)

	require.NoError(t, err)
	assert.Len(t, logger.warnings, 1)
}

type recordingLogger struct {
	domain.NopLogger
	warnings []string
}

func (l *recordingLogger) Warn(_ int, _, msg string) {
	l.warnings = append(l.warnings, msg)
}
