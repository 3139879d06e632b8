// Package app provides the dependency injection container for the application.
package app

import (
	"os"

	"github.com/runoshun/git-issue-commit/internal/domain"
	"github.com/runoshun/git-issue-commit/internal/infra/config"
	"github.com/runoshun/git-issue-commit/internal/infra/credstore"
	"github.com/runoshun/git-issue-commit/internal/infra/executor"
	"github.com/runoshun/git-issue-commit/internal/infra/git"
	"github.com/runoshun/git-issue-commit/internal/infra/logging"
	"github.com/runoshun/git-issue-commit/internal/infra/prompt"
	"github.com/runoshun/git-issue-commit/internal/infra/redmine"
	"github.com/runoshun/git-issue-commit/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir         string // Process working directory
	AppDir          string // Per-user config directory
	CredentialsPath string // Path to credentials.yaml
	TemplatePath    string // Path to the commit message template
	TempDir         string // Where commit message files are written
}

// newConfig creates a new Config for the given working and app directories.
func newConfig(workDir, appDir string, appConfig *domain.Config) Config {
	templatePath := domain.TemplatePath(appDir)
	if appConfig.Commit.TemplatePath != "" {
		templatePath = appConfig.Commit.TemplatePath
	}
	return Config{
		WorkDir:         workDir,
		AppDir:          appDir,
		CredentialsPath: domain.CredentialsPath(appDir),
		TemplatePath:    templatePath,
		TempDir:         os.TempDir(),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Credentials  domain.CredentialStore
	Fetcher      domain.IssueFetcher
	Templates    domain.TemplateManager
	Git          domain.Git // nil outside a git repository
	Executor     domain.CommandExecutor
	Prompter     domain.Prompter
	ConfigLoader domain.ConfigLoader
	Logger       domain.Logger

	// AppConfig is the configuration loaded at startup.
	AppConfig *domain.Config

	// GitErr is the reason Git is nil.
	GitErr error

	// Configuration
	Config Config

	closer func() error
}

// New creates a new Container for the given working directory.
// Being outside a git repository is not an error here; CommitIssueUseCase reports it.
func New(dir string) (*Container, error) {
	appDir := config.DefaultAppDir()

	configLoader := config.NewLoader(appDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	cfg := newConfig(dir, appDir, appConfig)

	logger := logging.New(appDir, logging.ParseLevel(appConfig.Log.Level))
	for _, w := range appConfig.Warnings {
		logger.Warn(0, "config", w)
	}

	c := &Container{
		Credentials:  credstore.New(cfg.CredentialsPath),
		Fetcher:      redmine.NewClient(appConfig.Tracker.Timeout, logger),
		Templates:    config.NewTemplateFile(cfg.TemplatePath),
		Executor:     executor.NewClient(),
		Prompter:     prompt.New(os.Stdin, os.Stderr),
		ConfigLoader: configLoader,
		Logger:       logger,
		AppConfig:    appConfig,
		Config:       cfg,
		closer:       logger.Close,
	}

	gitClient, err := git.NewClient(dir)
	if err != nil {
		c.GitErr = err
	} else {
		c.Git = gitClient
	}

	return c, nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// ResolveConfigUseCase returns a new ResolveConfig use case.
func (c *Container) ResolveConfigUseCase() *usecase.ResolveConfig {
	return usecase.NewResolveConfig(c.Credentials, c.Prompter, c.Logger)
}

// CommitMessageUseCase returns a new CommitMessage use case.
func (c *Container) CommitMessageUseCase() *usecase.CommitMessage {
	return usecase.NewCommitMessage(c.Git, c.Executor, c.Logger, c.Config.TempDir, c.Config.WorkDir)
}

// CommitIssueUseCase returns a new CommitIssue use case.
// It fails with the git detection error when no repository was found.
func (c *Container) CommitIssueUseCase() (*usecase.CommitIssue, error) {
	if c.Git == nil {
		if c.GitErr != nil {
			return nil, c.GitErr
		}
		return nil, domain.ErrNotGitRepository
	}
	return usecase.NewCommitIssue(
		c.ResolveConfigUseCase(),
		c.Fetcher,
		c.Templates,
		c.CommitMessageUseCase(),
		c.Git,
		c.Logger,
		c.Config.WorkDir,
	), nil
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.Credentials, c.Templates, c.AppConfig, c.Config.AppDir, c.Config.CredentialsPath)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Config.AppDir)
}

// InitTemplateUseCase returns a new InitTemplate use case.
func (c *Container) InitTemplateUseCase() *usecase.InitTemplate {
	return usecase.NewInitTemplate(c.Templates)
}
