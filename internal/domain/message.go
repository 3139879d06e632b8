package domain

import (
	"bytes"
	"fmt"
	"text/template"
)

// DefaultMessageTemplate is used when no user template exists.
const DefaultMessageTemplate = "Fix #{{.issue_id}} : {{.issue_subject}}\n"

// MessageData returns the variables available to a commit message template.
// The map is the only data exposed; no functions beyond text/template builtins are registered.
func MessageData(issue *Issue) map[string]any {
	return map[string]any{
		"issue_id":      issue.ID,
		"issue_subject": issue.Subject,
		"issue_project": issue.Project,
		"issue_tracker": issue.Tracker,
		"issue_status":  issue.Status,
		"issue_author":  issue.Author,
		"issue_url":     issue.URL,
	}
}

// RenderMessage expands source against issue.
// Syntax errors and references to unknown variables return ErrTemplate.
func RenderMessage(source string, issue *Issue) (string, error) {
	tmpl, err := template.New("message").Option("missingkey=error").Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, MessageData(issue)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	return buf.String(), nil
}
