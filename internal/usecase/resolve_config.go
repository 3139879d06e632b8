// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// ConfigSource tells where the tracker url and key came from.
type ConfigSource string

// Config sources, in resolution order.
const (
	SourceExplicit   ConfigSource = "explicit"
	SourceRepository ConfigSource = "repository"
	SourceDirectory  ConfigSource = "directory"
	SourcePrompt     ConfigSource = "prompt"
)

// Prompt labels.
const (
	urlPromptLabel = "Tracker url"
	keyPromptLabel = "Tracker api key"
)

// ResolveConfigInput contains the input for the ResolveConfig use case.
type ResolveConfigInput struct {
	URL     string // Explicit tracker url (flag or config); optional
	APIKey  string // Explicit api key (flag or config); optional
	RepoID  string // Repository identifier (origin url, or working directory)
	WorkDir string // Current working directory, used as a second lookup key
	IssueID int    // Issue being committed; used to tag log entries
}

// ResolveConfigOutput contains the output of the ResolveConfig use case.
type ResolveConfigOutput struct {
	Source ConfigSource
	Config domain.ResolvedConfig
}

// ResolveConfig determines the tracker url and api key for this run and
// records the repository association in the credential store.
type ResolveConfig struct {
	store    domain.CredentialStore
	prompter domain.Prompter
	logger   domain.Logger
}

// NewResolveConfig creates a new ResolveConfig use case.
func NewResolveConfig(store domain.CredentialStore, prompter domain.Prompter, logger domain.Logger) *ResolveConfig {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ResolveConfig{
		store:    store,
		prompter: prompter,
		logger:   logger,
	}
}

// Execute resolves the configuration. The first step that succeeds wins:
// explicit values, the store keyed by repository, the store keyed by working
// directory, then an interactive prompt. Explicit url and key override looked
// up values independently. Every successful resolution rewrites the store.
func (uc *ResolveConfig) Execute(ctx context.Context, in ResolveConfigInput) (*ResolveConfigOutput, error) {
	creds, err := uc.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	url, key := in.URL, in.APIKey
	source := SourceExplicit

	// An explicit url with a known key for it needs no further lookup.
	if url != "" && key == "" {
		if cred, ok := creds.Get(url); ok && cred.APIKey != "" {
			key = cred.APIKey
		}
	}

	if url == "" || key == "" {
		cred, found := creds.FindByRepo(in.RepoID)
		source = SourceRepository
		if !found && in.WorkDir != in.RepoID {
			cred, found = creds.FindByRepo(in.WorkDir)
			source = SourceDirectory
		}

		if found {
			if url == "" {
				url = cred.BaseURL
			}
			if key == "" {
				key = cred.APIKey
			}
		} else {
			source = SourcePrompt
			url, key, err = uc.prompt(ctx, creds, url, key)
			if err != nil {
				return nil, err
			}
		}
	}

	cfg := domain.ResolvedConfig{BaseURL: url, APIKey: key}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	creds.RecordAssociation(cfg.BaseURL, cfg.APIKey, in.RepoID)
	if err := uc.store.Save(creds); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}
	uc.logger.Info(in.IssueID, "config", fmt.Sprintf("resolved %s from %s for %s (key %s)",
		cfg.BaseURL, source, in.RepoID, domain.MaskKey(cfg.APIKey)))

	return &ResolveConfigOutput{Config: cfg, Source: source}, nil
}

// prompt asks for whichever of url and key is still missing. A key already
// stored for the entered url is reused.
func (uc *ResolveConfig) prompt(ctx context.Context, creds *domain.Credentials, url, key string) (string, string, error) {
	var err error
	if url == "" {
		url, err = uc.prompter.Prompt(ctx, urlPromptLabel, false)
		if err != nil {
			return "", "", err
		}
	}
	if key == "" {
		if cred, ok := creds.Get(url); ok && cred.APIKey != "" {
			return url, cred.APIKey, nil
		}
		key, err = uc.prompter.Prompt(ctx, keyPromptLabel, true)
		if err != nil {
			return "", "", err
		}
	}
	return url, key, nil
}
