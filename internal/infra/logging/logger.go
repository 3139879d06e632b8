// Package logging provides file-based logging for git-issue-commit.
// Entries are appended to <app dir>/logs/git-issue-commit.log and tagged with
// a per-run id so the lines of one invocation can be grouped.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes leveled entries to the application log file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	file   *os.File
	appDir string
	runID  string
	mu     sync.Mutex
	level  slog.Level
}

// New creates a new Logger that writes under appDir.
// If appDir is empty, logging is disabled (returns a no-op logger).
func New(appDir string, level slog.Level) *Logger {
	return &Logger{
		appDir: appDir,
		level:  level,
		runID:  uuid.NewString()[:8],
	}
}

// RunID returns the identifier attached to every entry of this run.
func (l *Logger) RunID() string {
	return l.runID
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureFile opens or returns the log file.
func (l *Logger) ensureFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file, nil
	}

	path := domain.LogPath(l.appDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [run-1a2b3c4d] [issue-42] [category] message
func formatLog(t time.Time, level slog.Level, runID string, issueID int, category, msg string) string {
	return fmt.Sprintf("[%s] [%s] [run-%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		runID,
		domain.IssueLabel(issueID),
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, issueID int, category, msg string) {
	if l.appDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return
	}

	entry := formatLog(time.Now(), level, l.runID, issueID, category, msg)
	if f, err := l.ensureFile(); err == nil {
		_, _ = io.WriteString(f, entry)
	}
}

// Info logs an info message.
func (l *Logger) Info(issueID int, category, msg string) {
	l.log(slog.LevelInfo, issueID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(issueID int, category, msg string) {
	l.log(slog.LevelDebug, issueID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(issueID int, category, msg string) {
	l.log(slog.LevelWarn, issueID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(issueID int, category, msg string) {
	l.log(slog.LevelError, issueID, category, msg)
}
