// Package git provides git operations.
package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

const (
	originRemote   = "origin"
	commitSection  = "commit"
	templateOption = "template"
)

// Client provides git operations backed by go-git.
// Config changes are made to the repository-local config only.
type Client struct {
	repo    *git.Repository
	workDir string // Toplevel of the current worktree
}

// Ensure Client implements domain.Git interface.
var _ domain.Git = (*Client)(nil)

// NewClient opens the repository containing dir.
// It handles both regular repositories and worktrees.
func NewClient(dir string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	return &Client{
		repo:    repo,
		workDir: wt.Filesystem.Root(),
	}, nil
}

// WorkDir returns the working tree root.
func (c *Client) WorkDir() string {
	return c.workDir
}

// RemoteURL returns the first URL of the origin remote, or "" if there is none.
func (c *Client) RemoteURL() (string, error) {
	remote, err := c.repo.Remote(originRemote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read remote %s: %w", originRemote, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// CommitTemplate returns the local commit.template value and whether it is set.
func (c *Client) CommitTemplate() (string, bool, error) {
	cfg, err := c.repo.Config()
	if err != nil {
		return "", false, fmt.Errorf("failed to read git config: %w", err)
	}
	section := cfg.Raw.Section(commitSection)
	if !section.HasOption(templateOption) {
		return "", false, nil
	}
	return section.Option(templateOption), true, nil
}

// SetCommitTemplate sets the local commit.template value.
func (c *Client) SetCommitTemplate(path string) error {
	cfg, err := c.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read git config: %w", err)
	}
	cfg.Raw.Section(commitSection).SetOption(templateOption, path)
	if err := c.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to set commit.template: %w", err)
	}
	return nil
}

// UnsetCommitTemplate removes the local commit.template value.
// The commit section is dropped when nothing else is left in it.
func (c *Client) UnsetCommitTemplate() error {
	cfg, err := c.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read git config: %w", err)
	}
	if !cfg.Raw.HasSection(commitSection) {
		return nil
	}
	section := cfg.Raw.Section(commitSection)
	section.RemoveOption(templateOption)
	if len(section.Options) == 0 && len(section.Subsections) == 0 {
		cfg.Raw.RemoveSection(commitSection)
	}
	if err := c.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to unset commit.template: %w", err)
	}
	return nil
}
