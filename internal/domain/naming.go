package domain

import (
	"fmt"
	"path/filepath"
)

// Well-known names under the per-user config directory.
const (
	AppDirName          = "git-issue-commit"
	ConfigFileName      = "config.toml"
	CredentialsFileName = "credentials.yaml"
	TemplateFileName    = "template"
	EnvFileName         = ".env"
	LogFileName         = "git-issue-commit.log"
)

// AppDir returns the per-user application directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func AppDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath(appDir string) string {
	return filepath.Join(appDir, ConfigFileName)
}

// CredentialsPath returns the path to the credential store file.
func CredentialsPath(appDir string) string {
	return filepath.Join(appDir, CredentialsFileName)
}

// TemplatePath returns the path to the user commit message template.
func TemplatePath(appDir string) string {
	return filepath.Join(appDir, TemplateFileName)
}

// EnvPath returns the path to the optional .env file.
func EnvPath(appDir string) string {
	return filepath.Join(appDir, EnvFileName)
}

// LogPath returns the path to the log file.
func LogPath(appDir string) string {
	return filepath.Join(appDir, "logs", LogFileName)
}

// IssueLabel returns the log label for an issue.
// Format: issue-<id>, or "global" when no issue is known yet.
func IssueLabel(issueID int) string {
	if issueID <= 0 {
		return "global"
	}
	return fmt.Sprintf("issue-%d", issueID)
}
