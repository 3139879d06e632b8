package domain

import (
	"context"
)

// CredentialStore persists tracker credentials and repository associations.
type CredentialStore interface {
	// Load reads the persisted credentials. A missing file yields an empty set.
	Load() (*Credentials, error)

	// Save replaces the persisted credentials with creds.
	Save(creds *Credentials) error
}

// IssueFetcher retrieves issues from the tracker.
type IssueFetcher interface {
	// FetchIssue retrieves a single issue.
	FetchIssue(ctx context.Context, cfg ResolvedConfig, issueID int) (*Issue, error)
}

// Git provides the git operations the commit workflow needs.
type Git interface {
	// RemoteURL returns the URL of the origin remote, or "" if none is configured.
	RemoteURL() (string, error)

	// CommitTemplate returns the repository's commit.template value and whether it is set.
	CommitTemplate() (string, bool, error)

	// SetCommitTemplate sets commit.template in the repository config.
	SetCommitTemplate(path string) error

	// UnsetCommitTemplate removes commit.template from the repository config.
	UnsetCommitTemplate() error

	// WorkDir returns the working tree root.
	WorkDir() string
}

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// Execute runs the command and returns its combined output.
	Execute(cmd *ExecCommand) ([]byte, error)

	// ExecuteInteractive runs the command attached to the terminal.
	ExecuteInteractive(cmd *ExecCommand) error
}

// Prompter asks the user for a value.
type Prompter interface {
	// Prompt blocks until a non-empty value is entered.
	// If secret is true the input is masked.
	Prompt(ctx context.Context, label string, secret bool) (string, error)
}

// ConfigLoader loads application configuration.
type ConfigLoader interface {
	// Load returns the configuration (defaults <- config file <- environment).
	Load() (*Config, error)
}

// TemplateSource provides the commit message template.
type TemplateSource interface {
	// Template returns the template text; the built-in default when no user template exists.
	Template() (string, error)
}

// Logger writes diagnostic log entries.
type Logger interface {
	Info(issueID int, category, msg string)
	Debug(issueID int, category, msg string)
	Warn(issueID int, category, msg string)
	Error(issueID int, category, msg string)
}

// NopLogger discards all entries.
type NopLogger struct{}

func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

// TemplateManager is a TemplateSource backed by an editable file.
type TemplateManager interface {
	TemplateSource

	// Path returns the template file location.
	Path() string

	// Exists reports whether a user template file is present.
	Exists() bool

	// Init writes the built-in template to Path. Returns ErrTemplateExists if present.
	Init() error
}
