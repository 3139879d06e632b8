package usecase

import (
	"context"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// InitTemplateOutput contains the output of the InitTemplate use case.
type InitTemplateOutput struct {
	Path string // Path to the created template file
}

// InitTemplate writes the built-in commit message template to the user
// template location so it can be customized.
type InitTemplate struct {
	templates domain.TemplateManager
}

// NewInitTemplate creates a new InitTemplate use case.
func NewInitTemplate(templates domain.TemplateManager) *InitTemplate {
	return &InitTemplate{templates: templates}
}

// Execute creates the template file.
func (uc *InitTemplate) Execute(_ context.Context) (*InitTemplateOutput, error) {
	if err := uc.templates.Init(); err != nil {
		return nil, err
	}
	return &InitTemplateOutput{Path: uc.templates.Path()}, nil
}
