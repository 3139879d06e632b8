package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// Ensure TemplateFile implements domain.TemplateManager.
var _ domain.TemplateManager = (*TemplateFile)(nil)

// TemplateFile reads the commit message template from a file.
type TemplateFile struct {
	path string
}

// NewTemplateFile creates a TemplateFile for path.
func NewTemplateFile(path string) *TemplateFile {
	return &TemplateFile{path: path}
}

// Path returns the template file path.
func (t *TemplateFile) Path() string {
	return t.path
}

// Exists reports whether the template file is present.
func (t *TemplateFile) Exists() bool {
	_, err := os.Stat(t.path)
	return err == nil
}

// Template returns the template file content, or domain.DefaultMessageTemplate
// when the file does not exist.
func (t *TemplateFile) Template() (string, error) {
	if t.path == "" {
		return domain.DefaultMessageTemplate, nil
	}
	content, err := os.ReadFile(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultMessageTemplate, nil
		}
		return "", fmt.Errorf("read template file: %w", err)
	}
	return string(content), nil
}

// Init writes the default template to the template path so it can be customized.
// Returns domain.ErrTemplateExists if the file is already there.
func (t *TemplateFile) Init() error {
	if t.Exists() {
		return domain.ErrTemplateExists
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return fmt.Errorf("create template directory: %w", err)
	}
	return os.WriteFile(t.path, []byte(domain.DefaultMessageTemplate), 0o600)
}
