package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// CommitMessageInput contains the input for the CommitMessage use case.
type CommitMessageInput struct {
	Message string   // Rendered commit message
	GitArgs []string // Flags forwarded verbatim to git commit
	Silent  bool     // Commit with -F instead of opening the editor
	IssueID int      // Issue the message was rendered for; used to tag log entries
}

// CommitMessageOutput contains the output of the CommitMessage use case.
type CommitMessageOutput struct {
	Output string // Captured git output (silent mode only)
}

// CommitMessage applies a rendered message to git commit.
type CommitMessage struct {
	git      domain.Git
	executor domain.CommandExecutor
	logger   domain.Logger
	tempDir  string
	workDir  string
}

// NewCommitMessage creates a new CommitMessage use case.
// tempDir is where the message file is written; "" means the system default.
// workDir is the directory git commit runs in, so relative paths in the
// forwarded arguments resolve against it; "" means the working tree root.
func NewCommitMessage(git domain.Git, executor domain.CommandExecutor, logger domain.Logger, tempDir, workDir string) *CommitMessage {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &CommitMessage{
		git:      git,
		executor: executor,
		logger:   logger,
		tempDir:  tempDir,
		workDir:  workDir,
	}
}

// Execute commits with the message. In silent mode git reads the message with -F
// and its output is captured. Otherwise the message becomes the local
// commit.template for an interactive git commit, and the previous template
// setting is restored on every exit path.
func (uc *CommitMessage) Execute(_ context.Context, in CommitMessageInput) (*CommitMessageOutput, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	path, err := uc.writeMessage(in.Message)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(path) }()

	if in.Silent {
		cmd := domain.GitCommitCommand(in.GitArgs, path, uc.commandDir())
		out, err := uc.executor.Execute(cmd)
		if err != nil {
			uc.logger.Error(in.IssueID, "commit", fmt.Sprintf("git commit failed: %v", err))
			return nil, fmt.Errorf("git commit failed: %w\n%s", err, strings.TrimRight(string(out), "\n"))
		}
		return &CommitMessageOutput{Output: string(out)}, nil
	}

	if err := uc.commitInteractive(in.IssueID, in.GitArgs, path); err != nil {
		return nil, err
	}
	return &CommitMessageOutput{}, nil
}

func (uc *CommitMessage) commitInteractive(issueID int, gitArgs []string, path string) (err error) {
	prev, hadPrev, err := uc.git.CommitTemplate()
	if err != nil {
		return err
	}
	if err := uc.git.SetCommitTemplate(path); err != nil {
		return err
	}
	defer func() {
		var restoreErr error
		if hadPrev {
			restoreErr = uc.git.SetCommitTemplate(prev)
		} else {
			restoreErr = uc.git.UnsetCommitTemplate()
		}
		if restoreErr != nil {
			uc.logger.Error(issueID, "commit", fmt.Sprintf("failed to restore commit.template: %v", restoreErr))
			err = errors.Join(err, fmt.Errorf("restore commit.template: %w", restoreErr))
		}
	}()

	cmd := domain.GitCommitCommand(gitArgs, "", uc.commandDir())
	if err := uc.executor.ExecuteInteractive(cmd); err != nil {
		uc.logger.Warn(issueID, "commit", fmt.Sprintf("interactive git commit ended with: %v", err))
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}

func (uc *CommitMessage) commandDir() string {
	if uc.workDir != "" {
		return uc.workDir
	}
	return uc.git.WorkDir()
}

func (uc *CommitMessage) writeMessage(message string) (string, error) {
	f, err := os.CreateTemp(uc.tempDir, "git-issue-commit-*.txt")
	if err != nil {
		return "", fmt.Errorf("create message file: %w", err)
	}
	if _, err := f.WriteString(message); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write message file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close message file: %w", err)
	}
	return f.Name(), nil
}
