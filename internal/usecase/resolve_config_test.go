package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-issue-commit/internal/domain"
	"github.com/runoshun/git-issue-commit/internal/testutil"
	"github.com/runoshun/git-issue-commit/internal/usecase"
)

const (
	trackerURL = "https://redmine.example.com"
	repoID     = "git@example.com:team/app.git"
	workDir    = "/home/me/src/app"
)

func TestResolveConfig_Execute(t *testing.T) {
	t.Run("uses explicit values and records them", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		prompter := &testutil.MockPrompter{}

		uc := usecase.NewResolveConfig(store, prompter, nil)
		out, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{
			URL:     trackerURL,
			APIKey:  "flag-key",
			RepoID:  repoID,
			WorkDir: workDir,
		})

		require.NoError(t, err)
		assert.Equal(t, usecase.SourceExplicit, out.Source)
		assert.Equal(t, domain.ResolvedConfig{BaseURL: trackerURL, APIKey: "flag-key"}, out.Config)
		assert.Empty(t, prompter.Labels)

		saved := store.LastSaved()
		require.NotNil(t, saved)
		cred, ok := saved.FindByRepo(repoID)
		require.True(t, ok)
		assert.Equal(t, "flag-key", cred.APIKey)
	})

	t.Run("logs the resolution under the issue", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		store.Creds.RecordAssociation(trackerURL, "stored-key", repoID)
		logger := &testutil.MockLogger{}

		uc := usecase.NewResolveConfig(store, &testutil.MockPrompter{}, logger)
		_, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{RepoID: repoID, IssueID: 42})

		require.NoError(t, err)
		assert.Equal(t, []int{42}, logger.IssueIDs("config"))
		for _, e := range logger.Entries {
			assert.NotContains(t, e.Msg, "stored-key")
		}
	})

	t.Run("resolves a known repository without prompting", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		store.Creds.RecordAssociation(trackerURL, "stored-key", repoID)
		prompter := &testutil.MockPrompter{}

		uc := usecase.NewResolveConfig(store, prompter, nil)
		out, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{RepoID: repoID, WorkDir: workDir})

		require.NoError(t, err)
		assert.Equal(t, usecase.SourceRepository, out.Source)
		assert.Equal(t, domain.ResolvedConfig{BaseURL: trackerURL, APIKey: "stored-key"}, out.Config)
		assert.Empty(t, prompter.Labels)
		assert.Len(t, store.Saved, 1, "store is rewritten even when nothing changed")
	})

	t.Run("falls back to the working directory", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		store.Creds.RecordAssociation(trackerURL, "dir-key", workDir)

		uc := usecase.NewResolveConfig(store, &testutil.MockPrompter{}, nil)
		out, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{RepoID: repoID, WorkDir: workDir})

		require.NoError(t, err)
		assert.Equal(t, usecase.SourceDirectory, out.Source)
		assert.Equal(t, "dir-key", out.Config.APIKey)

		cred, ok := store.LastSaved().Get(trackerURL)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{workDir, repoID}, cred.Repos)
	})

	t.Run("explicit values override stored ones and are persisted", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		store.Creds.RecordAssociation(trackerURL, "stored-key", repoID)

		uc := usecase.NewResolveConfig(store, &testutil.MockPrompter{}, nil)
		out, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{
			URL:    "https://other.example.com",
			APIKey: "new-key",
			RepoID: repoID,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ResolvedConfig{BaseURL: "https://other.example.com", APIKey: "new-key"}, out.Config)
		other, ok := store.LastSaved().Get("https://other.example.com")
		require.True(t, ok)
		assert.True(t, other.HasRepo(repoID))
	})

	t.Run("explicit key combines with stored url", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		store.Creds.RecordAssociation(trackerURL, "stored-key", repoID)

		uc := usecase.NewResolveConfig(store, &testutil.MockPrompter{}, nil)
		out, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{APIKey: "flag-key", RepoID: repoID})

		require.NoError(t, err)
		assert.Equal(t, domain.ResolvedConfig{BaseURL: trackerURL, APIKey: "flag-key"}, out.Config)
		cred, _ := store.LastSaved().Get(trackerURL)
		assert.Equal(t, "flag-key", cred.APIKey)
	})

	t.Run("explicit url reuses the key stored for it", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		store.Creds.RecordAssociation(trackerURL, "stored-key", "another-repo")
		prompter := &testutil.MockPrompter{}

		uc := usecase.NewResolveConfig(store, prompter, nil)
		out, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{URL: trackerURL, RepoID: repoID})

		require.NoError(t, err)
		assert.Equal(t, usecase.SourceExplicit, out.Source)
		assert.Equal(t, "stored-key", out.Config.APIKey)
		assert.Empty(t, prompter.Labels)
	})

	t.Run("prompts for url and key when nothing is known", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		prompter := &testutil.MockPrompter{Answers: []string{trackerURL, "typed-key"}}

		uc := usecase.NewResolveConfig(store, prompter, nil)
		out, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{RepoID: repoID, WorkDir: workDir})

		require.NoError(t, err)
		assert.Equal(t, usecase.SourcePrompt, out.Source)
		assert.Equal(t, domain.ResolvedConfig{BaseURL: trackerURL, APIKey: "typed-key"}, out.Config)
		assert.Equal(t, []bool{false, true}, prompter.Secrets, "only the key is masked")

		// A second run resolves without prompting.
		second := &testutil.MockPrompter{}
		out, err = usecase.NewResolveConfig(store, second, nil).Execute(context.Background(),
			usecase.ResolveConfigInput{RepoID: repoID, WorkDir: workDir})
		require.NoError(t, err)
		assert.Equal(t, usecase.SourceRepository, out.Source)
		assert.Empty(t, second.Labels)
	})

	t.Run("prompt reuses the key known for the entered url", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		store.Creds.RecordAssociation(trackerURL, "stored-key", "another-repo")
		prompter := &testutil.MockPrompter{Answers: []string{trackerURL}}

		uc := usecase.NewResolveConfig(store, prompter, nil)
		out, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{RepoID: repoID, WorkDir: workDir})

		require.NoError(t, err)
		assert.Equal(t, "stored-key", out.Config.APIKey)
		assert.Len(t, prompter.Labels, 1)
	})

	t.Run("prompts only for the key when url is explicit and unknown", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		prompter := &testutil.MockPrompter{Answers: []string{"typed-key"}}

		uc := usecase.NewResolveConfig(store, prompter, nil)
		out, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{URL: trackerURL, RepoID: repoID})

		require.NoError(t, err)
		assert.Equal(t, "typed-key", out.Config.APIKey)
		assert.Len(t, prompter.Labels, 1)
		assert.Equal(t, []bool{true}, prompter.Secrets)
	})

	t.Run("aborted prompt leaves the store untouched", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		prompter := &testutil.MockPrompter{Err: domain.ErrPromptAborted}

		uc := usecase.NewResolveConfig(store, prompter, nil)
		_, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{RepoID: repoID})

		require.ErrorIs(t, err, domain.ErrPromptAborted)
		assert.Empty(t, store.Saved)
	})

	t.Run("rejects an invalid url", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		prompter := &testutil.MockPrompter{Answers: []string{"redmine", "key"}}

		uc := usecase.NewResolveConfig(store, prompter, nil)
		_, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{RepoID: repoID})

		require.ErrorIs(t, err, domain.ErrCredentialMissing)
		assert.Empty(t, store.Saved)
	})

	t.Run("malformed store aborts", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		store.LoadErr = domain.ErrParse
		prompter := &testutil.MockPrompter{}

		uc := usecase.NewResolveConfig(store, prompter, nil)
		_, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{URL: trackerURL, APIKey: "k", RepoID: repoID})

		require.ErrorIs(t, err, domain.ErrParse)
		assert.Empty(t, prompter.Labels)
		assert.Empty(t, store.Saved)
	})

	t.Run("save failure is reported", func(t *testing.T) {
		store := testutil.NewMockCredentialStore()
		store.SaveErr = errors.New("disk full")

		uc := usecase.NewResolveConfig(store, &testutil.MockPrompter{}, nil)
		_, err := uc.Execute(context.Background(), usecase.ResolveConfigInput{URL: trackerURL, APIKey: "k", RepoID: repoID})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}
