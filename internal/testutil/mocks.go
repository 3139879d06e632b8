// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"os"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// MockCredentialStore is a test double for domain.CredentialStore.
// Saved keeps a snapshot of every Save call.
type MockCredentialStore struct {
	Creds   *domain.Credentials
	LoadErr error
	SaveErr error
	Saved   []*domain.Credentials
}

// NewMockCredentialStore creates a MockCredentialStore with an empty credential set.
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{Creds: domain.NewCredentials()}
}

// Load returns the configured credentials.
func (m *MockCredentialStore) Load() (*domain.Credentials, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Creds, nil
}

// Save records the credentials.
func (m *MockCredentialStore) Save(creds *domain.Credentials) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	snapshot := domain.NewCredentials()
	for _, url := range creds.URLs() {
		cred, _ := creds.Get(url)
		cp := *cred
		cp.Repos = append([]string(nil), cred.Repos...)
		snapshot.Put(&cp)
	}
	m.Saved = append(m.Saved, snapshot)
	m.Creds = creds
	return nil
}

// LastSaved returns the credentials passed to the most recent Save, or nil.
func (m *MockCredentialStore) LastSaved() *domain.Credentials {
	if len(m.Saved) == 0 {
		return nil
	}
	return m.Saved[len(m.Saved)-1]
}

// MockIssueFetcher is a test double for domain.IssueFetcher.
type MockIssueFetcher struct {
	Issue     *domain.Issue
	Err       error
	GotConfig domain.ResolvedConfig
	GotID     int
	Called    bool
}

// FetchIssue returns the configured issue.
func (m *MockIssueFetcher) FetchIssue(_ context.Context, cfg domain.ResolvedConfig, issueID int) (*domain.Issue, error) {
	m.Called = true
	m.GotConfig = cfg
	m.GotID = issueID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Issue, nil
}

// MockGit is a test double for domain.Git.
type MockGit struct {
	RemoteErr   error
	TemplateErr error
	SetErr      error
	UnsetErr    error
	Remote      string
	Template    string
	Dir         string
	SetHistory  []string
	TemplateSet bool
	UnsetCalled bool
}

// RemoteURL returns the configured remote.
func (m *MockGit) RemoteURL() (string, error) {
	return m.Remote, m.RemoteErr
}

// CommitTemplate returns the configured template value.
func (m *MockGit) CommitTemplate() (string, bool, error) {
	if m.TemplateErr != nil {
		return "", false, m.TemplateErr
	}
	return m.Template, m.TemplateSet, nil
}

// SetCommitTemplate records and applies the new value.
func (m *MockGit) SetCommitTemplate(path string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.SetHistory = append(m.SetHistory, path)
	m.Template = path
	m.TemplateSet = true
	return nil
}

// UnsetCommitTemplate clears the value.
func (m *MockGit) UnsetCommitTemplate() error {
	m.UnsetCalled = true
	if m.UnsetErr != nil {
		return m.UnsetErr
	}
	m.Template = ""
	m.TemplateSet = false
	return nil
}

// WorkDir returns the configured directory.
func (m *MockGit) WorkDir() string {
	return m.Dir
}

// MockExecutor is a test double for domain.CommandExecutor.
// When Git is set, ExecuteInteractive reads the file referenced by the current
// commit template into MessageAtExec, mimicking git opening the template.
type MockExecutor struct {
	Git              *MockGit
	Output           []byte
	Err              error
	InteractiveErr   error
	Commands         []*domain.ExecCommand
	MessageAtExec    string
	InteractiveCalls int
}

// Execute records the command and returns the configured output.
func (m *MockExecutor) Execute(cmd *domain.ExecCommand) ([]byte, error) {
	m.Commands = append(m.Commands, cmd)
	for i := 0; i+1 < len(cmd.Args); i++ {
		if cmd.Args[i] != "-F" {
			continue
		}
		if content, err := os.ReadFile(cmd.Args[i+1]); err == nil {
			m.MessageAtExec = string(content)
		}
		break
	}
	return m.Output, m.Err
}

// ExecuteInteractive records the command and returns the configured error.
func (m *MockExecutor) ExecuteInteractive(cmd *domain.ExecCommand) error {
	m.Commands = append(m.Commands, cmd)
	m.InteractiveCalls++
	if m.Git != nil && m.Git.TemplateSet {
		if content, err := os.ReadFile(m.Git.Template); err == nil {
			m.MessageAtExec = string(content)
		}
	}
	return m.InteractiveErr
}

// MockPrompter is a test double for domain.Prompter.
// Answers are returned in order; Labels records every question asked.
type MockPrompter struct {
	Err     error
	Answers []string
	Labels  []string
	Secrets []bool
}

// Prompt returns the next answer.
func (m *MockPrompter) Prompt(_ context.Context, label string, secret bool) (string, error) {
	m.Labels = append(m.Labels, label)
	m.Secrets = append(m.Secrets, secret)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Answers) == 0 {
		return "", domain.ErrPromptAborted
	}
	answer := m.Answers[0]
	m.Answers = m.Answers[1:]
	return answer, nil
}

// MockTemplateSource is a test double for domain.TemplateSource.
type MockTemplateSource struct {
	Err  error
	Text string
}

// Template returns the configured text, or the default template when empty.
func (m *MockTemplateSource) Template() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Text == "" {
		return domain.DefaultMessageTemplate, nil
	}
	return m.Text, nil
}

// LogEntry is one entry captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	IssueID  int
}

// MockLogger is a test double for domain.Logger that records every entry.
type MockLogger struct {
	Entries []LogEntry
}

func (m *MockLogger) record(level string, issueID int, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, IssueID: issueID, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(issueID int, category, msg string) { m.record("INFO", issueID, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(issueID int, category, msg string) { m.record("DEBUG", issueID, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(issueID int, category, msg string) { m.record("WARN", issueID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(issueID int, category, msg string) { m.record("ERROR", issueID, category, msg) }

// IssueIDs returns the issue ids of all entries in the given category.
func (m *MockLogger) IssueIDs(category string) []int {
	var ids []int
	for _, e := range m.Entries {
		if e.Category == category {
			ids = append(ids, e.IssueID)
		}
	}
	return ids
}
