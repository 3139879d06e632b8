package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// ShowLogsInput contains the parameters for showing the run log.
type ShowLogsInput struct {
	IssueID int // Only show entries for this issue (0 = all)
	Lines   int // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the result of showing the run log.
type ShowLogsOutput struct {
	LogPath string // Path to the log file
	Content string // Selected log lines
}

// ShowLogs is the use case for viewing the run log.
type ShowLogs struct {
	appDir string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(appDir string) *ShowLogs {
	return &ShowLogs{appDir: appDir}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	logPath := domain.LogPath(uc.appDir)

	content, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", logPath, domain.ErrNoLogs)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if in.IssueID > 0 {
		tag := "[" + domain.IssueLabel(in.IssueID) + "]"
		filtered := lines[:0]
		for _, line := range lines {
			if strings.Contains(line, tag) {
				filtered = append(filtered, line)
			}
		}
		lines = filtered
	}

	// If lines is specified, get only the last N lines
	if in.Lines > 0 && len(lines) > in.Lines {
		lines = lines[len(lines)-in.Lines:]
	}

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}

	return &ShowLogsOutput{
		LogPath: logPath,
		Content: result,
	}, nil
}
