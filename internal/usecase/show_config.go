package usecase

import (
	"context"
	"os"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// TrackerSummary describes one stored tracker credential without exposing the key.
type TrackerSummary struct {
	BaseURL   string
	MaskedKey string
	Repos     []string
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Config          *domain.Config // Effective configuration
	ConfigPath      string
	TemplatePath    string
	CredentialsPath string
	Trackers        []TrackerSummary // Sorted by base URL
	ConfigExists    bool
	TemplateExists  bool
}

// ShowConfig reports where configuration lives and what is stored.
type ShowConfig struct {
	store           domain.CredentialStore
	templates       domain.TemplateManager
	config          *domain.Config
	appDir          string
	credentialsPath string
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(
	store domain.CredentialStore,
	templates domain.TemplateManager,
	config *domain.Config,
	appDir string,
	credentialsPath string,
) *ShowConfig {
	return &ShowConfig{
		store:           store,
		templates:       templates,
		config:          config,
		appDir:          appDir,
		credentialsPath: credentialsPath,
	}
}

// Execute collects configuration information.
func (uc *ShowConfig) Execute(_ context.Context) (*ShowConfigOutput, error) {
	creds, err := uc.store.Load()
	if err != nil {
		return nil, err
	}

	configPath := domain.ConfigPath(uc.appDir)
	_, statErr := os.Stat(configPath)

	out := &ShowConfigOutput{
		Config:          uc.config,
		ConfigPath:      configPath,
		ConfigExists:    statErr == nil,
		TemplatePath:    uc.templates.Path(),
		TemplateExists:  uc.templates.Exists(),
		CredentialsPath: uc.credentialsPath,
	}
	for _, url := range creds.URLs() {
		cred, _ := creds.Get(url)
		out.Trackers = append(out.Trackers, TrackerSummary{
			BaseURL:   cred.BaseURL,
			MaskedKey: domain.MaskKey(cred.APIKey),
			Repos:     append([]string(nil), cred.Repos...),
		})
	}
	return out, nil
}
