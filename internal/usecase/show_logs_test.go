package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/git-issue-commit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `[2026-01-02 10:00:00] [INFO] [run-aaaa1111] [global] [config] resolved tracker
[2026-01-02 10:00:01] [INFO] [run-aaaa1111] [issue-42] [commit] committed
[2026-01-02 10:05:00] [ERROR] [run-bbbb2222] [issue-7] [fetch] fetch failed
[2026-01-02 10:06:00] [INFO] [run-cccc3333] [issue-42] [commit] committed again
`

func writeLog(t *testing.T, appDir, content string) string {
	t.Helper()
	logPath := domain.LogPath(appDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	require.NoError(t, os.WriteFile(logPath, []byte(content), 0o644))
	return logPath
}

func TestShowLogs_Execute_Success(t *testing.T) {
	appDir := t.TempDir()
	logPath := writeLog(t, appDir, sampleLog)

	out, err := NewShowLogs(appDir).Execute(context.Background(), ShowLogsInput{})

	require.NoError(t, err)
	assert.Equal(t, logPath, out.LogPath)
	assert.Equal(t, sampleLog, out.Content)
}

func TestShowLogs_Execute_FilterByIssue(t *testing.T) {
	appDir := t.TempDir()
	writeLog(t, appDir, sampleLog)

	out, err := NewShowLogs(appDir).Execute(context.Background(), ShowLogsInput{IssueID: 42})

	require.NoError(t, err)
	assert.Equal(t,
		"[2026-01-02 10:00:01] [INFO] [run-aaaa1111] [issue-42] [commit] committed\n"+
			"[2026-01-02 10:06:00] [INFO] [run-cccc3333] [issue-42] [commit] committed again\n",
		out.Content)
}

func TestShowLogs_Execute_IssuePrefixDoesNotMatch(t *testing.T) {
	appDir := t.TempDir()
	writeLog(t, appDir, sampleLog)

	out, err := NewShowLogs(appDir).Execute(context.Background(), ShowLogsInput{IssueID: 4})

	require.NoError(t, err)
	assert.Empty(t, out.Content)
}

func TestShowLogs_Execute_LastLines(t *testing.T) {
	appDir := t.TempDir()
	writeLog(t, appDir, sampleLog)

	out, err := NewShowLogs(appDir).Execute(context.Background(), ShowLogsInput{Lines: 1})

	require.NoError(t, err)
	assert.Equal(t, "[2026-01-02 10:06:00] [INFO] [run-cccc3333] [issue-42] [commit] committed again\n", out.Content)
}

func TestShowLogs_Execute_NoLogFile(t *testing.T) {
	_, err := NewShowLogs(t.TempDir()).Execute(context.Background(), ShowLogsInput{})

	assert.ErrorIs(t, err, domain.ErrNoLogs)
}
