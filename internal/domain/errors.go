package domain

import "errors"

// Domain errors.
var (
	ErrParse             = errors.New("parse error")
	ErrFetch             = errors.New("fetch error")
	ErrTemplate          = errors.New("template error")
	ErrMissingIssueID    = errors.New("issue id is required")
	ErrInvalidIssueID    = errors.New("invalid issue id")
	ErrNotGitRepository  = errors.New("not a git repository (or any of the parent directories)")
	ErrCredentialMissing = errors.New("tracker url and api key could not be determined")
	ErrPromptAborted     = errors.New("prompt aborted")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrEmptyMessage      = errors.New("commit message cannot be empty")
	ErrTemplateExists    = errors.New("template file already exists")
	ErrNoLogs            = errors.New("no log file found")
)
